package models

// StoredFile описывает файл, записанный на диск из одной части multipart-запроса.
type StoredFile struct {
	Field       string `json:"field,omitempty"`
	Name        string `json:"name"`
	Original    string `json:"original_name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// UploadResult возвращается после обработки запроса и перечисляет записанные файлы.
type UploadResult struct {
	Files   []StoredFile
	Skipped int
}

// Bytes возвращает суммарный объём записанных файлов.
func (r UploadResult) Bytes() int64 {
	var total int64
	for _, f := range r.Files {
		total += f.Size
	}
	return total
}
