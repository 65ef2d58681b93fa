package models

import "errors"

var (
	ErrCreateDir    = errors.New("failed to create upload directory")
	ErrCreateFile   = errors.New("failed to create file")
	ErrWriteFile    = errors.New("failed to write file")
	ErrReadBody     = errors.New("failed to read multipart body")
	ErrNotMultipart = errors.New("request is not multipart")
	ErrInvalidName  = errors.New("invalid file name")
)
