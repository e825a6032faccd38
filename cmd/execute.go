// Package cmd is the `zsc` command line driver.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"zscript/build"
	"zscript/common"
	"zscript/link"
	"zscript/report"
	"zscript/unit"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"
)

// Execute runs the main `zsc` application.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("zsc", "zsc binds and links ZScript compilation units", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	linkCmd := cli.AddSubcommand("link", "compile and link a unit", true)
	linkCmd.AddPrimaryArg("unit-path", "the path to the unit manifest", true)
	linkCmd.AddFlag("parallel", "p", "emit functions concurrently regardless of the unit profile")

	dumpCmd := cli.AddSubcommand("dump", "print the symbol table of a unit", true)
	dumpCmd.AddPrimaryArg("unit-path", "the path to the unit manifest", true)

	initCmd := cli.AddSubcommand("init", "initialize a unit manifest", true)
	initCmd.AddPrimaryArg("unit-name", "the name of the new unit", true)

	cli.AddSubcommand("version", "print the zsc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	// an empty log level means the unit profile decides
	logLevel, _ := result.Arguments["loglevel"].(string)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "link":
		if !execLinkCommand(subResult, logLevel) {
			os.Exit(1)
		}
	case "dump":
		if !execDumpCommand(subResult, logLevel) {
			os.Exit(1)
		}
	case "init":
		execInitCommand(subResult)
	case "version":
		report.PrintInfoMessage("zsc Version", common.ZScriptVersion)
	}
}

// loadUnit loads the unit named by the primary argument of a subcommand.
func loadUnit(result *olive.ArgParseResult) (*unit.Unit, bool) {
	unitRelPath, _ := result.PrimaryArg()

	unitPath, err := filepath.Abs(unitRelPath)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return nil, false
	}

	u, err := unit.LoadUnit(unitPath)
	if err != nil {
		report.PrintErrorMessage("Unit Load Error", err)
		return nil, false
	}

	return u, true
}

// beginUnit resets the reporter before a unit is loaded so that warnings
// raised while loading are kept until compilation finishes.
func beginUnit(logLevel string) {
	if logLevel == "" {
		report.InitReporter(report.LogLevelVerbose)
	} else {
		report.InitReporter(report.LogLevelFromName(logLevel))
	}
}

// applyLogLevel selects the log level for compiling a unit: the command line
// log level if one was given, the profile's otherwise.
func applyLogLevel(u *unit.Unit, logLevel string) {
	if logLevel == "" {
		report.SetLogLevel(u.Profile.LogLevel)
	} else {
		report.SetLogLevel(report.LogLevelFromName(logLevel))
	}
}

// compileUnit runs every phase over a unit.  The reporter must have been set
// up by beginUnit before the unit was loaded.
func compileUnit(u *unit.Unit, logLevel string, parallel bool) (c *build.Compiler, prog *link.Program, ok bool) {
	applyLogLevel(u, logLevel)

	defer report.CatchErrors()

	c = build.NewCompiler(u.Path, nil, parallel || u.Profile.Parallel)
	report.ReportCompileHeader(u.Name, c.Symbols.BuildID.String())

	prog, ok = c.Compile(u.Program)
	report.ReportCompilationFinished()

	return
}

// execLinkCommand executes the link subcommand and handles all errors.
func execLinkCommand(result *olive.ArgParseResult, logLevel string) bool {
	beginUnit(logLevel)

	u, ok := loadUnit(result)
	if !ok {
		return false
	}

	c, prog, ok := compileUnit(u, logLevel, result.HasFlag("parallel"))
	if !ok {
		return false
	}

	if u.Profile.DumpSymbols {
		if err := c.Symbols.PrintDiagnostics(); err != nil {
			report.PrintErrorMessage("Output Error", err)
		}
	}

	if u.Profile.DumpLink {
		fmt.Print(prog.Listing())
	}

	if err := printLinkSummary(u, prog); err != nil {
		report.PrintErrorMessage("Output Error", err)
		return false
	}

	return true
}

// execDumpCommand executes the dump subcommand: the unit is compiled and its
// symbol table printed.
func execDumpCommand(result *olive.ArgParseResult, logLevel string) bool {
	beginUnit(logLevel)

	u, ok := loadUnit(result)
	if !ok {
		return false
	}

	c, _, ok := compileUnit(u, logLevel, false)
	if c == nil {
		return false
	}

	if err := c.Symbols.PrintDiagnostics(); err != nil {
		report.PrintErrorMessage("Output Error", err)
		return false
	}

	return ok
}

// execInitCommand executes the init subcommand in the working directory.
func execInitCommand(result *olive.ArgParseResult) {
	workDir, err := os.Getwd()
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return
	}

	unitName, _ := result.PrimaryArg()
	path, err := unit.InitUnit(unitName, workDir)
	if err != nil {
		report.PrintErrorMessage("Unit Init Error", err)
		return
	}

	report.PrintInfoMessage("Created", path)
}

// printLinkSummary prints the scripts of a linked program.
func printLinkSummary(u *unit.Unit, prog *link.Program) error {
	td := pterm.TableData{{"Script", "Kind", "Run Label", "Params", "Receiver Slot"}}

	for _, name := range sortedScriptNames(prog) {
		entry := prog.Scripts[name]

		receiver := "-"
		if entry.HasThis {
			receiver = fmt.Sprintf("v%d", entry.ThisPtr)
		}

		td = append(td, []string{
			name,
			entry.Kind.String(),
			fmt.Sprintf("l%d", entry.RunLabel),
			fmt.Sprint(entry.NumParams),
			receiver,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(td).Srender()
	if err != nil {
		return err
	}

	fmt.Println(table)
	report.PrintInfoMessage(
		"Linked",
		fmt.Sprintf("unit `%s`: %d functions, %d global slots (build %s)", u.Name, len(prog.Funcs), len(prog.GlobalSlots), prog.BuildID),
	)

	return nil
}

func sortedScriptNames(prog *link.Program) []string {
	names := make([]string, 0, len(prog.Scripts))
	for name := range prog.Scripts {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
