// Package uploadhttp реализует HTTP-интерфейс приёма файлов поверх локального диска.
// Основные эндпоинты:
//   - POST /upload — принимает multipart/form-data и пишет каждую часть с filename в каталог загрузок.
//   - GET /health — отдаёт число файлов и их суммарный объём в каталоге загрузок.
//   - GET /metrics — метрики Prometheus (если включены в конфигурации).
//
// Тело запроса ограничено max_body_bytes: запрос с большим Content-Length отклоняется с 413
// до вызова обработчика. CORS разрешён только для настроенных origin, метода POST и заголовков
// Accept и Content-Type.
package uploadhttp
