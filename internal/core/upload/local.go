package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local 存到 Dir，返回 Prefix/<uuid><ext>；Prefix 对应 engine 上的静态目录
type Local struct {
	Dir    string
	Prefix string
}

func (u *Local) Upload(ctx context.Context, fh *multipart.FileHeader) (p string, err error) {
	if fh == nil {
		return "", nil
	}
	defer func() { observe("local", err) }()
	if err = ctx.Err(); err != nil {
		return "", err
	}

	if err = os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir upload dir: %w", err)
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", err
	}
	if err = dst.Close(); err != nil {
		return "", err
	}

	prefix := u.Prefix
	if prefix == "" {
		prefix = "/upload"
	}
	return path.Join(prefix, name), nil
}
