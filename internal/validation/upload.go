package validation

import "fmt"

// MIME types accepted for image uploads. SVG is additionally allowed on the
// general upload endpoint only; the image-storage bucket serves <img> tags
// where SVG would reintroduce script execution.
var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadRules describes an upload endpoint's acceptance policy
type UploadRules struct {
	MaxSize  int64
	AllowSVG bool
}

// CheckUpload validates an upload's MIME type and size against the rules
func CheckUpload(contentType string, size int64, rules UploadRules) Errors {
	var errs Errors

	allowed := imageMIMETypes[contentType] || (rules.AllowSVG && contentType == "image/svg+xml")
	if !allowed {
		errs.add("file", fmt.Sprintf("unsupported file type: %s", contentType))
	}

	if size <= 0 {
		errs.add("file", "file is empty")
	} else if size > rules.MaxSize {
		errs.add("file", fmt.Sprintf("file exceeds the %dMB limit", rules.MaxSize/(1024*1024)))
	}

	return errs
}
