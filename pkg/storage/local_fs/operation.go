package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// SendFile streams a file to the local save path and stamps the given
// modification time.
// SendFile 将文件流写入本地保存路径，并设置修改时间
func (p *LocalFS) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dst := p.getSavePath() + pathKey

	if err := os.MkdirAll(filepath.Dir(dst), 0754); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(out, file); err != nil {
		out.Close()
		return "", err
	}
	if err = out.Close(); err != nil {
		return "", err
	}

	if !modTime.IsZero() {
		if err = os.Chtimes(dst, modTime, modTime); err != nil {
			return "", err
		}
	}

	return dst, nil
}

// SendContent 将字节内容写入本地保存路径
func (p *LocalFS) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	dst := p.getSavePath() + pathKey

	if err := os.MkdirAll(filepath.Dir(dst), 0754); err != nil {
		return "", err
	}

	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", err
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dst, modTime, modTime); err != nil {
			return "", err
		}
	}

	return dst, nil
}
