package uploadsvc

import "io"

// sniffLen — сколько первых байт части сохраняется для определения типа содержимого.
const sniffLen = 3072

// partWriter пишет в файл и запоминает ошибку записи отдельно от ошибки чтения,
// а также первые sniffLen байт для mimetype.
type partWriter struct {
	w    io.Writer
	head []byte
	err  error
}

func newPartWriter(w io.Writer) *partWriter {
	return &partWriter{w: w, head: make([]byte, 0, sniffLen)}
}

func (pw *partWriter) Write(p []byte) (int, error) {
	if room := sniffLen - len(pw.head); room > 0 {
		pw.head = append(pw.head, p[:min(room, len(p))]...)
	}

	n, err := pw.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		pw.err = err
	}

	return n, err
}
