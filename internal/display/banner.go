package display

import (
	"fmt"
	"os"

	"github.com/lumafold/snapsort/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Cyan)
	}
	fmt.Fprint(os.Stdout, `                                          _
 ___ _ __   __ _ _ __  ___  ___  _ __ ___| |_
/ __| '_ \ / _`+"`"+` | '_ \/ __|/ _ \| '__/ __| __|
\__ \ | | | (_| | |_) \__ \ (_) | |  \__ \ |_
|___/_| |_|\__,_| .__/|___/\___/|_|  |___/\__|
                |_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
