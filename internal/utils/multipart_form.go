package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
)

// ErrInvalidFormData 表示整个 multipart 请求体无法解析
var ErrInvalidFormData = errors.New("invalid form data")

// 单次读取的块大小，文件内容按到达顺序逐块拼接
const formChunkSize = 32 * 1024

// UploadedFile 上传表单中的文件部分，内容完整缓存在内存中
type UploadedFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// MultipartForm 解码结果：普通字段 + 至多一个文件
type MultipartForm struct {
	Fields map[string]string
	File   *UploadedFile
}

// Field 返回字段原始值，不存在时为空串
func (f *MultipartForm) Field(name string) string {
	if f == nil || f.Fields == nil {
		return ""
	}
	return f.Fields[name]
}

// DecodeMultipartForm 解析 multipart/form-data 请求体。
//
// body 可以是原始字节，也可以是 base64 编码（base64Encoded=true）。
// 带 filename 参数或 Content-Type 为 application/octet-stream 的部分视为文件。
// 字段与文件的先后顺序不限；出现多个文件时只保留最后一个，同名字段后者覆盖前者。
// 任何分帧错误（缺少 boundary、流被截断、base64 非法）都整体返回 ErrInvalidFormData，不返回部分结果。
func DecodeMultipartForm(body io.Reader, contentType string, base64Encoded bool) (*MultipartForm, error) {
	boundary, err := multipartBoundary(contentType)
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = strings.NewReader("")
	}
	if base64Encoded {
		body = base64.NewDecoder(base64.StdEncoding, body)
	}

	reader := multipart.NewReader(body, boundary)
	form := &MultipartForm{Fields: make(map[string]string)}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormData, err)
		}

		if isFilePart(part) {
			file, err := readFilePart(part)
			_ = part.Close()
			if err != nil {
				return nil, err
			}
			form.File = file
			continue
		}

		name := part.FormName()
		value, err := readChunks(part)
		_ = part.Close()
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}
		form.Fields[name] = string(value)
	}

	return form, nil
}

func multipartBoundary(contentType string) (string, error) {
	if strings.TrimSpace(contentType) == "" {
		return "", fmt.Errorf("%w: missing content type", ErrInvalidFormData)
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormData, err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return "", fmt.Errorf("%w: unexpected content type %q", ErrInvalidFormData, mediaType)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return "", fmt.Errorf("%w: missing boundary", ErrInvalidFormData)
	}
	return boundary, nil
}

// isFilePart 带 filename 参数（即使为空）或声明为 application/octet-stream 的部分视为文件
func isFilePart(part *multipart.Part) bool {
	if _, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition")); err == nil {
		if _, ok := params["filename"]; ok {
			return true
		}
	}
	mediaType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/octet-stream"
}

func readFilePart(part *multipart.Part) (*UploadedFile, error) {
	data, err := readChunks(part)
	if err != nil {
		return nil, err
	}
	return &UploadedFile{
		Data:        data,
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
	}, nil
}

// readChunks 逐块读取，直到该 part 结束后才视为完整
func readChunks(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, formChunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormData, err)
		}
	}
}
