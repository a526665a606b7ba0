package main

// reset clears every stored collection back to the demo defaults.
func (cli *commandLine) reset() error {
	cli.db.Reset()
	return nil
}
