// Package extract turns raw Gmail messages into the normalized pieces the
// import engine works on: plain-text body, transaction amount, order
// identifier and merchant name.
package extract

import (
	"encoding/base64"
	"regexp"
	"strings"

	gm "google.golang.org/api/gmail/v1"
)

var (
	styleRE  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptRE = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRE    = regexp.MustCompile(`<[^>]+>`)

	ampRE   = regexp.MustCompile(`(?i)&amp;`)
	ltRE    = regexp.MustCompile(`(?i)&lt;`)
	gtRE    = regexp.MustCompile(`(?i)&gt;`)
	nbspRE  = regexp.MustCompile(`(?i)&nbsp;`)
	rupeeRE = regexp.MustCompile(`(?i)&#8377;|&#x20b9;`)

	rsMarkerRE  = regexp.MustCompile(`(?i)\brs\.?\s*`)
	inrMarkerRE = regexp.MustCompile(`(?i)\binr\s*`)
	spaceRunRE  = regexp.MustCompile(`\s{2,}`)
)

// Body extracts and normalizes plain text from a Gmail message payload.
// All text/plain leaves are preferred over text/html; the normalized
// result lets every downstream pattern assume a single ₹ currency marker.
// Returns "" when the payload carries no readable text.
func Body(payload *gm.MessagePart) string {
	if payload == nil {
		return ""
	}

	var plains, htmls []string
	var gather func(parts []*gm.MessagePart)
	gather = func(parts []*gm.MessagePart) {
		for _, p := range parts {
			if p.Body != nil && p.Body.Data != "" {
				switch p.MimeType {
				case "text/plain":
					if decoded, err := decodeBase64URL(p.Body.Data); err == nil {
						plains = append(plains, decoded)
					}
				case "text/html":
					if decoded, err := decodeBase64URL(p.Body.Data); err == nil {
						htmls = append(htmls, decoded)
					}
				}
			}
			if len(p.Parts) > 0 {
				gather(p.Parts)
			}
		}
	}

	var raw string
	if len(payload.Parts) > 0 {
		gather(payload.Parts)
		if len(plains) > 0 {
			raw = strings.Join(plains, "\n")
		} else {
			raw = strings.Join(htmls, "\n")
		}
	}
	if raw == "" && payload.Body != nil && payload.Body.Data != "" {
		if decoded, err := decodeBase64URL(payload.Body.Data); err == nil {
			raw = decoded
		}
	}
	if raw == "" {
		return ""
	}

	return Normalize(raw)
}

// Normalize strips markup from raw mail text and collapses every rupee
// notation ("Rs.", "INR", numeric entities, the common UTF-8 mojibake)
// into the ₹ sign.
func Normalize(raw string) string {
	s := styleRE.ReplaceAllString(raw, " ")
	s = scriptRE.ReplaceAllString(s, " ")
	s = tagRE.ReplaceAllString(s, " ")

	s = ampRE.ReplaceAllString(s, "&")
	s = ltRE.ReplaceAllString(s, "<")
	s = gtRE.ReplaceAllString(s, ">")
	s = nbspRE.ReplaceAllString(s, " ")
	s = rupeeRE.ReplaceAllString(s, "₹")
	// Mis-encoded UTF-8 rupee seen in bank mail rendered as Latin-1.
	s = strings.ReplaceAll(s, "â‚¹", "₹")

	s = rsMarkerRE.ReplaceAllString(s, "₹")
	s = inrMarkerRE.ReplaceAllString(s, "₹")

	return strings.TrimSpace(spaceRunRE.ReplaceAllString(s, " "))
}

// decodeBase64URL decodes Gmail's base64url-encoded content.
func decodeBase64URL(data string) (string, error) {
	// Gmail uses URL-safe base64 without padding.
	data = strings.ReplaceAll(data, "-", "+")
	data = strings.ReplaceAll(data, "_", "/")
	switch len(data) % 4 {
	case 2:
		data += "=="
	case 3:
		data += "="
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
