// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// DefaultGDBPort is the well-known TCP port the guest debug stub listens on.
const DefaultGDBPort = 1234

// First file descriptor available for console pipes. FDs 0, 1, 2 are
// standard in, out, err.
const minAdditionalFileDescriptor = 3

// CommandSpec defines the parameters for a single QEMU run.
type CommandSpec struct {
	// Path or name of the qemu-system binary.
	Executable string

	// QEMU machine type to use. Depends on the QEMU binary used.
	Machine string

	// CPU type to use. Depends on machine type and QEMU binary used.
	CPU string

	// Memory for the machine in MB.
	Memory uint64

	// Additional peripheral devices, passed verbatim as -device arguments.
	Devices []string

	// Path to the firmware code flash image.
	FirmwareCode string

	// Attach the firmware code flash read-only. Some machine types refuse a
	// writable executable flash.
	FirmwareCodeReadOnly bool

	// Path to the firmware variable store flash image. Always writable, as
	// the firmware updates it at runtime.
	FirmwareVars string

	// Host directory exposed to the guest as a raw virtual FAT drive.
	FATDirectory string

	// Path to the host log file capturing serial console output.
	SerialLog string

	// Path to the host log file capturing the debug console output. Empty
	// if the machine has no debug console.
	DebugConsoleLog string

	// Path to the host log file QEMU writes its own diagnostics to, like
	// interrupt and reset tracing.
	DiagnosticLog string

	// TCP port for the GDB remote debug stub.
	GDBPort uint16

	// ExtraArgs are extra arguments that are passed to the QEMU command.
	// They must not interfere with the essential arguments set by the
	// command itself or an error will be returned on [CommandSpec.Run].
	ExtraArgs []Argument
}

// Validate checks that all required fields are set.
func (s *CommandSpec) Validate() error {
	required := map[string]string{
		"executable":     s.Executable,
		"firmware code":  s.FirmwareCode,
		"firmware vars":  s.FirmwareVars,
		"fat directory":  s.FATDirectory,
		"serial log":     s.SerialLog,
		"diagnostic log": s.DiagnosticLog,
	}

	for name, value := range required {
		if value == "" {
			return &ArgumentError{name + " must not be empty"}
		}
	}

	return nil
}

// consoleLogs returns the log file paths that are attached via pipe file
// descriptors, in file descriptor order starting at fd 3.
func (s *CommandSpec) consoleLogs() []string {
	logs := []string{s.SerialLog}
	if s.DebugConsoleLog != "" {
		logs = append(logs, s.DebugConsoleLog)
	}

	return logs
}

// arguments compiles the argument list for the QEMU command.
func (s *CommandSpec) arguments() []Argument {
	args := []Argument{}

	if s.Machine != "" {
		args = append(args, UniqueArg("machine", s.Machine))
	}

	if s.CPU != "" {
		args = append(args, UniqueArg("cpu", s.CPU))
	}

	if s.Memory != 0 {
		memory := strconv.FormatUint(s.Memory, 10) + "M"
		args = append(args, UniqueArg("m", memory))
	}

	for _, device := range s.Devices {
		args = append(args, RepeatableArg("device", device))
	}

	codeDrive := []string{
		"if=pflash",
		"format=raw",
		"file=" + s.FirmwareCode,
	}
	if s.FirmwareCodeReadOnly {
		codeDrive = append(codeDrive, "readonly=on")
	}

	args = append(args,
		RepeatableArg("drive", codeDrive...),
		RepeatableArg("drive",
			"if=pflash",
			"format=raw",
			"file="+s.FirmwareVars,
		),
		// Expose the staging directory as a virtual FAT drive. No image
		// conversion step, QEMU synthesizes the filesystem on the fly.
		RepeatableArg("drive",
			"format=raw",
			"file=fat:rw:"+s.FATDirectory,
		),
	)

	// Console output is written to pipe file descriptors provided via
	// [exec.Cmd.ExtraFiles].
	fd := minAdditionalFileDescriptor
	args = append(args, RepeatableArg("serial", "file:"+fdPath(fd)))

	if s.DebugConsoleLog != "" {
		fd++
		args = append(args, UniqueArg("debugcon", "file:"+fdPath(fd)))
	}

	args = append(args,
		UniqueArg("D", s.DiagnosticLog),
		// Trace interrupts and resets into the diagnostic log.
		UniqueArg("d", "int"),
		UniqueArg("gdb", "tcp::"+strconv.Itoa(int(s.GDBPort))),
	)

	return append(args, s.ExtraArgs...)
}

// Run executes the QEMU command synchronously. It blocks until the QEMU
// process exits or ctx is cancelled. QEMU's stdout and stderr are forwarded
// unmodified so its diagnostics are never suppressed.
//
// It returns a [CommandError] carrying the process exit code if QEMU
// terminates with a non-zero status.
func (s *CommandSpec) Run(
	ctx context.Context,
	stdout, stderr io.Writer,
) error {
	err := s.Validate()
	if err != nil {
		return err
	}

	args, err := BuildArgumentStrings(s.arguments())
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, s.Executable, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	processors := make([]*ConsoleProcessor, 0, len(s.consoleLogs()))

	defer func() {
		for _, p := range processors {
			p.Close()
		}
	}()

	processorGroup := errgroup.Group{}

	for _, logFile := range s.consoleLogs() {
		processor, err := NewConsoleProcessor(logFile)
		if err != nil {
			return &ConsoleError{Name: logFile, Err: err}
		}

		processors = append(processors, processor)
		cmd.ExtraFiles = append(cmd.ExtraFiles, processor.Writer())
		processorGroup.Go(processor.Run)
	}

	runErr := cmd.Run()

	// Terminate the processors by closing the write ends of the pipes. The
	// duplicates inherited by QEMU are gone once the process exited.
	for _, p := range processors {
		p.CloseWriter()
	}

	processorErr := processorGroup.Wait()

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			runErr = &CommandError{
				Err:      runErr,
				ExitCode: exitErr.ExitCode(),
			}
		} else {
			runErr = fmt.Errorf("start: %w", runErr)
		}
	}

	return errors.Join(runErr, processorErr)
}

// String returns the command invocation as a single string for logging.
func (s *CommandSpec) String() string {
	args, err := BuildArgumentStrings(s.arguments())
	if err != nil {
		return s.Executable
	}

	cmd := s.Executable
	for _, arg := range args {
		cmd += " " + arg
	}

	return cmd
}

func fdPath(fd int) string {
	return fmt.Sprintf("/dev/fd/%d", fd)
}
