// Command missioncontrol shows a synthetic team task dashboard in the
// terminal, as a text report, or over HTTP.
package main

import "github.com/marcus/missioncontrol/cmd/missioncontrol/commands"

func main() {
	commands.Execute()
}
