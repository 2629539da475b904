package util

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineID   string
	machineIDMu sync.Mutex
)

// GetMachineID 返回当前机器的稳定标识
// 优先使用 machineid 库，失败则回退到主板序列号，全部失败返回空串
func GetMachineID() string {
	machineIDMu.Lock()
	defer machineIDMu.Unlock()

	if machineID != "" {
		return machineID
	}

	if id, err := machineid.ID(); err == nil && id != "" {
		machineID = id
		return machineID
	}

	if id, err := getBoardSerial(); err == nil && id != "" {
		machineID = id
		return machineID
	}

	return ""
}

func getBoardSerial() (string, error) {
	switch runtime.GOOS {
	case "linux":
		content, err := os.ReadFile("/sys/class/dmi/id/board_serial")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(content)), nil
	case "windows":
		out, err := exec.Command("wmic", "baseboard", "get", "serialnumber").Output()
		if err != nil {
			return "", err
		}
		return parseSerialNumber(string(out)), nil
	default:
		return "", errors.New("unsupported os")
	}
}

func parseSerialNumber(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, "SerialNumber") {
			continue
		}
		return line
	}
	return ""
}
