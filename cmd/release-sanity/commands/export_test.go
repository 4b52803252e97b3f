package commands

import "io"

// SetArgs sets the arguments for the command.
func (a *App) SetArgs(args []string) {
	a.cmd.SetArgs(args)
}

// SetInput sets the input stream of the command.
func (a *App) SetInput(r io.Reader) {
	a.cmd.SetIn(r)
}

// SetOutput sets the output stream of the command.
func (a *App) SetOutput(w io.Writer) {
	a.cmd.SetOut(w)
}

// SetErrOutput sets the error stream of the command.
func (a *App) SetErrOutput(w io.Writer) {
	a.cmd.SetErr(w)
}

// Config returns the configuration of the app.
func (a *App) Config() appConfig {
	return a.config
}
