package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
	Verbose   int  `help:"Logging verbosity." short:"v" type:"counter"`
}

type Commands struct {
	Globals

	Check   CheckCmd   `cmd:"" help:"Feed a source file through an analysis session and report diagnostics."`
	Outline OutlineCmd `cmd:"" help:"Print the typed top-level bindings of a source file."`
	Dump    DumpCmd    `cmd:"" help:"Dump the syntax tree of a source file."`
	Watch   WatchCmd   `cmd:"" help:"Re-check a source file whenever it changes on disk."`
	Init    InitCmd    `cmd:"" help:"Interactively create a .kestrel project configuration."`
}
