package fileurl

import (
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileType int

const ImageType FileType = iota + 1

// IsFile 判断所给路径是否为文件
func IsFile(path string) bool {
	return !IsDir(path)
}

// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// GetFileExt 获取文件后缀
func GetFileExt(name string) string {
	return path.Ext(name)
}

// SafeFileName strips any directory components from an incoming file
// name. Names that reduce to nothing get a random one with the original
// extension preserved.
// SafeFileName 去除文件名中的路径部分，空名时生成随机名
func SafeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return uuid.New().String()
	}
	return name
}

// GetDatePath 获取日期保存路径
func GetDatePath(timeFormat string) string {
	now := time.Now()
	if timeFormat == "" {
		timeFormat = "200601/02"
	}
	return PathSuffixCheckAdd(now.Format(timeFormat), "/")
}

// IsContainExt determines if file extension is within the allowed range
// IsContainExt 判断文件后缀是否在允许范围内
func IsContainExt(t FileType, name string, uploadAllowExts []string) bool {
	ext := strings.ToUpper(GetFileExt(name))
	switch t {
	case ImageType:
		for _, allowExt := range uploadAllowExts {
			if strings.ToUpper(allowExt) == ext {
				return true
			}
		}
	}
	return false
}

// CreatePath 创建文件所在目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// GetExePath 获取当前执行文件所在目录
func GetExePath() string {
	file, _ := exec.LookPath(os.Args[0])
	path, _ := filepath.Abs(file)
	index := strings.LastIndex(path, string(os.PathSeparator))
	return path[:index]
}

// PathSuffixCheckAdd 检查路径后缀，如果没有则添加
func PathSuffixCheckAdd(path string, suffix string) string {
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}

// CopyFile copies a file, creating the destination directory as needed.
// Used as the cross-device fallback when rename is not possible.
// CopyFile 复制文件，目标目录不存在时自动创建
func CopyFile(srcPath, destPath string) error {
	sourceFile, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0754); err != nil {
		return err
	}

	destFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return nil
}
