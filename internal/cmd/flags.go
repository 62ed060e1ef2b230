// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/ahutter/bootrun/internal/harness"
	"github.com/ahutter/bootrun/internal/sys"
)

const (
	name = "bootrun"

	firmwareDirEnv   = "OVMF_DIR"
	bootloaderDirEnv = "LIMINE_DIR"

	runDirDefault  = "run"
	builderDefault = "cargo xtask package"

	usageMessage = `Usage of 'bootrun':
    bootrun [flags...]

Boots the binary produced by the external builder under QEMU, once staged
with all three boot protocol entries (efi, linux, limine).

The firmware and bootloader locations can also be provided via the
environment variables OVMF_DIR and LIMINE_DIR. Flags take precedence over
environment variables. Defaults for all locations can be placed in a
./` + localConfigFile + ` file, which has the lowest precedence.
`
)

type flags struct {
	spec    harness.Spec
	flagSet *flag.FlagSet

	firmwareDir   string
	bootloaderDir string
	runDir        string
	builder       string
	qemuBin       string

	version bool
	debug   bool
}

func newFlags(output io.Writer) *flags {
	flags := &flags{
		spec: harness.Spec{
			Arch:         sys.X8664,
			BuildProfile: harness.BuildProfileDev,
		},
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.Var(
		&f.spec.Arch,
		"arch",
		"guest architecture: x86_64, aarch64, x86_32",
	)

	flagSet.Var(
		&f.spec.BuildProfile,
		"profile",
		"build profile passed to the builder: dev, release",
	)

	flagSet.StringVar(
		&f.firmwareDir,
		"firmware",
		f.firmwareDir,
		"firmware root containing per-arch code.fd and vars.fd "+
			"(default $"+firmwareDirEnv+")",
	)

	flagSet.StringVar(
		&f.bootloaderDir,
		"bootloader",
		f.bootloaderDir,
		"directory containing the pre-built bootloader binaries "+
			"(default $"+bootloaderDirEnv+")",
	)

	flagSet.StringVar(
		&f.runDir,
		"runDir",
		f.runDir,
		"root for the per-arch run directories (default "+runDirDefault+")",
	)

	flagSet.StringVar(
		&f.builder,
		"builder",
		f.builder,
		"builder command the --arch, --profile and --output-path arguments "+
			"are appended to (default '"+builderDefault+"')",
	)

	flagSet.StringVar(
		&f.qemuBin,
		"qemuBin",
		f.qemuBin,
		"QEMU binary to use (default depends on -arch: qemu-system-*)",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// ParseArgs parses the command line and resolves the final [harness.Spec]
// from flags, environment variables and the local config file, in that
// precedence order.
func (f *flags) ParseArgs(args []string, config localConfig) error {
	// A help flag short-circuits everything else, wherever it is placed.
	for _, arg := range args {
		if arg == "--" {
			break
		}

		if arg == "-h" || arg == "-help" || arg == "--help" {
			f.flagSet.Usage()
			return &ParseArgsError{msg: "help requested", err: ErrHelp}
		}
	}

	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	return f.resolve(config)
}

// resolve merges the parsed flags with the environment and config file
// fallbacks into the final spec.
func (f *flags) resolve(config localConfig) error {
	firmwareDir := firstNonEmpty(
		f.firmwareDir,
		envValue(firmwareDirEnv),
		config.FirmwareDir,
	)
	if firmwareDir == "" {
		return f.fail(
			"firmware directory not set (use -firmware or $"+firmwareDirEnv+")",
			nil,
		)
	}

	bootloaderDir := firstNonEmpty(
		f.bootloaderDir,
		envValue(bootloaderDirEnv),
		config.BootloaderDir,
	)
	if bootloaderDir == "" {
		return f.fail(
			"bootloader directory not set (use -bootloader or $"+
				bootloaderDirEnv+")",
			nil,
		)
	}

	var err error

	f.spec.FirmwareDir, err = sys.AbsolutePath(firmwareDir)
	if err != nil {
		return f.fail("firmware directory", err)
	}

	f.spec.BootloaderDir, err = sys.AbsolutePath(bootloaderDir)
	if err != nil {
		return f.fail("bootloader directory", err)
	}

	f.spec.RunDir, err = sys.AbsolutePath(
		firstNonEmpty(f.runDir, config.RunDir, runDirDefault),
	)
	if err != nil {
		return f.fail("run directory", err)
	}

	builder := firstNonEmpty(f.builder, config.Builder, builderDefault)

	f.spec.BuilderCommand = strings.Fields(builder)
	if len(f.spec.BuilderCommand) == 0 {
		return f.fail("builder command must not be empty", nil)
	}

	f.spec.QemuExecutable = firstNonEmpty(f.qemuBin, config.QemuBin)

	return nil
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
