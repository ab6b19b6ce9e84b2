package deps

import (
	"os/exec"
	"strings"
)

// Status represents the installation status of a dependency
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// CheckWhisperCli checks if whisper-cli is installed and returns its status
func CheckWhisperCli() Status {
	return check("whisper-cli", "--version")
}

// CheckPwRecord checks if the PipeWire capture tool is installed
func CheckPwRecord() Status {
	return check("pw-record", "--version")
}

func check(binary, versionFlag string) Status {
	path, err := exec.LookPath(binary)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	// first output line carries the version info
	cmd := exec.Command(path, versionFlag)
	output, err := cmd.Output()
	if err == nil {
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}
