package webdav

import (
	"io"
	"os"
	"path"
	"time"

	"github.com/kiyensi/store-settings-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// SendFile 将文件流式上传到 WebDAV 服务器。
// WebDAV 不支持覆盖对象 mtime，lastModified 仅为统一签名。
func (w *WebDAV) SendFile(fileKey string, file io.Reader, cType string, lastModified time.Time) (string, error) {

	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey

	err := w.Client.MkdirAll(path.Dir(fileKey), 0644)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	err = w.Client.WriteStream(fileKey, file, os.ModePerm)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileKey, nil
}

// SendContent 将二进制内容上传到 WebDAV 服务器。
func (w *WebDAV) SendContent(fileKey string, content []byte, lastModified time.Time) (string, error) {

	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey

	err := w.Client.MkdirAll(path.Dir(fileKey), 0644)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	err = w.Client.Write(fileKey, content, os.ModePerm)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileKey, nil
}
