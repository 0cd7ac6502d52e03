// Package uploadtest 提供测试用的文件头和假图床。
package uploadtest

import (
	"bytes"
	"context"
	"mime/multipart"
	"sync"
	"testing"
)

// FileHeader 走一遍 multipart 编解码，得到和 gin 解析结果一致的 *multipart.FileHeader
func FileHeader(t testing.TB, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

// Fake 记录调用次数，返回固定链接或错误
type Fake struct {
	Link string
	Err  error

	mu    sync.Mutex
	calls int
}

func (f *Fake) Upload(_ context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.Link, nil
}

func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
