package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
	maxPreviewKeys     = 8
	redacted           = "redacted"
)

// Keys whose values never reach the log stream. Matching is by substring on
// the lowercased key so "new_password" and "id_token" are covered.
var sensitiveKeyParts = []string{"password", "token", "secret", "authorization", "contact_email"}

type requestLog struct {
	Time      string `json:"time"`
	RequestID string `json:"request_id,omitempty"`
	UserUUID  string `json:"user_uuid"`
	Admin     bool   `json:"admin,omitempty"`
	Route     string `json:"route,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
	Request   struct {
		Method string `json:"method"`
		URI    string `json:"uri"`
		Body   any    `json:"body,omitempty"`
	} `json:"request"`
	Response struct {
		Status int    `json:"status"`
		Body   any    `json:"body,omitempty"`
		Error  string `json:"error,omitempty"`
	} `json:"response"`
}

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRoutePath: true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := requestLog{
				Time:      v.StartTime.UTC().Format(time.RFC3339),
				RequestID: v.RequestID,
				UserUUID:  "anonymous",
				Route:     v.RoutePath,
				LatencyMS: v.Latency.Milliseconds(),
			}
			if principal, ok := CurrentPrincipal(c); ok {
				entry.UserUUID = principal.UserID.String()
				entry.Admin = principal.IsAdmin
			}

			entry.Request.Method = v.Method
			entry.Request.URI = v.URI
			entry.Request.Body = c.Get(requestBodyLogKey)
			entry.Response.Status = v.Status
			entry.Response.Body = c.Get(responseBodyLogKey)
			if v.Error != nil {
				entry.Response.Error = v.Error.Error()
			}

			buf, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/swagger")
		},
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
				c.Set(requestBodyLogKey, summary)
			}
			if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
				c.Set(responseBodyLogKey, summary)
			}
		},
	}))
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

func sanitizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}

	mediaType, params, _ := mime.ParseMediaType(strings.TrimSpace(contentType))
	switch {
	case mediaType == "text/html":
		return "html"
	case strings.HasPrefix(mediaType, "multipart/"):
		return sanitizeMultipart(body, params["boundary"])
	case mediaType == "application/x-www-form-urlencoded":
		if values, err := url.ParseQuery(string(body)); err == nil && len(values) > 0 {
			fields := make(map[string]any, len(values))
			for key, vals := range values {
				for _, v := range vals {
					addFormField(fields, key, sanitizeValue(key, v))
				}
			}
			return limitJSONSize(fields)
		}
	}

	if mediaType == "application/json" || json.Valid(body) {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return limitJSONSize(sanitizeJSON(data))
		}
	}

	if containsBinaryBytes(body) {
		return "binary"
	}
	return clampString(string(body))
}

func sanitizeJSON(value any) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			if isSensitiveKey(key) {
				result[key] = redacted
				continue
			}
			result[key] = sanitizeJSON(val)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = sanitizeJSON(item)
		}
		return result
	case string:
		return sanitizeValue("", v)
	default:
		return v
	}
}

func sanitizeValue(key, value string) string {
	if key != "" && isSensitiveKey(key) {
		return redacted
	}
	if containsBinaryBytes([]byte(value)) {
		return "binary"
	}
	return clampString(value)
}

// sanitizeMultipart keeps text fields and replaces file parts with their
// declared name and type, which is all the hero image upload needs.
func sanitizeMultipart(body []byte, boundary string) any {
	if boundary == "" {
		return "binary"
	}
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	fields := make(map[string]any)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "binary"
		}
		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}
		var value any
		if fileName := part.FileName(); fileName != "" {
			value = map[string]any{
				"file":         clampString(fileName),
				"content_type": part.Header.Get(echo.HeaderContentType),
			}
		} else if data, err := io.ReadAll(io.LimitReader(part, maxLoggedBody+1)); err != nil {
			value = "binary"
		} else {
			value = sanitizeValue(name, string(data))
		}
		_ = part.Close()
		addFormField(fields, name, value)
	}
	if len(fields) == 0 {
		return "binary"
	}
	return limitJSONSize(fields)
}

// limitJSONSize replaces oversized payloads with their shape: top-level keys
// for objects, the item count for arrays.
func limitJSONSize(value any) any {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	summary := map[string]any{"_truncated": true, "_bytes": len(buf)}
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > maxPreviewKeys {
			summary["_omitted_fields"] = len(keys) - maxPreviewKeys
			keys = keys[:maxPreviewKeys]
		}
		summary["_keys"] = keys
	case []any:
		summary["_total_items"] = len(v)
	}
	return summary
}

func containsBinaryBytes(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}

func addFormField(fields map[string]any, key string, value any) {
	if existing, ok := fields[key]; ok {
		switch items := existing.(type) {
		case []any:
			fields[key] = append(items, value)
		default:
			fields[key] = []any{items, value}
		}
		return
	}
	fields[key] = value
}
