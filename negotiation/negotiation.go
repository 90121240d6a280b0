// Package negotiation picks the response representation (JSON or XML) for a
// request and encodes values in it. It has no HTTP dependencies so the same
// encoders serve handlers and the snapshot publisher.
package negotiation

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"
)

type Format string

const (
	FormatUnknown Format = ""
	FormatJSON    Format = "json"
	FormatXML     Format = "xml"
)

const (
	MediaTypeJSON = "application/json"
	MediaTypeXML  = "application/xml"
)

// ErrNotAcceptable means no supported representation satisfies the request.
var ErrNotAcceptable = errors.New("no acceptable representation")

// Supported lists formats in server preference order; the first one is the default.
var Supported = []Format{FormatJSON, FormatXML}

// ParseFormat maps an explicit format indicator (URL suffix or segment) to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: format %q is not supported", ErrNotAcceptable, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return MediaTypeXML + "; charset=utf-8"
	default:
		return MediaTypeJSON + "; charset=utf-8"
	}
}

func (f Format) String() string {
	return string(f)
}

type acceptRange struct {
	mediaType string
	q         float64
}

// FromAccept selects a format from an Accept header value. An empty header
// means "anything" and yields the default format.
func FromAccept(header string) (Format, error) {
	if strings.TrimSpace(header) == "" {
		return Supported[0], nil
	}

	ranges := parseAccept(header)
	if len(ranges) == 0 {
		return FormatUnknown, fmt.Errorf("%w: unparseable Accept header %q", ErrNotAcceptable, header)
	}

	// Явный q=0 для конкретного типа исключает формат даже при наличии */*.
	excluded := make(map[Format]bool)
	for _, r := range ranges {
		if r.q == 0 {
			if f := formatForMediaType(r.mediaType); f != FormatUnknown {
				excluded[f] = true
			}
		}
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].q > ranges[j].q
	})

	for _, r := range ranges {
		if r.q == 0 {
			break
		}
		if isWildcard(r.mediaType) {
			for _, f := range Supported {
				if !excluded[f] {
					return f, nil
				}
			}
			continue
		}
		if f := formatForMediaType(r.mediaType); f != FormatUnknown && !excluded[f] {
			return f, nil
		}
	}

	return FormatUnknown, fmt.Errorf("%w: Accept %q", ErrNotAcceptable, header)
}

func parseAccept(header string) []acceptRange {
	parts := strings.Split(header, ",")
	ranges := make([]acceptRange, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mediaType, params, err := mime.ParseMediaType(part)
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed < 0 || parsed > 1 {
				continue
			}
			q = parsed
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: q})
	}
	return ranges
}

// text/* is not a wildcard here: both formats are served as application/*.
func isWildcard(mediaType string) bool {
	switch mediaType {
	case "*/*", "application/*":
		return true
	}
	return false
}

func formatForMediaType(mediaType string) Format {
	switch {
	case mediaType == MediaTypeJSON, mediaType == "text/json", strings.HasSuffix(mediaType, "+json"):
		return FormatJSON
	case mediaType == MediaTypeXML, mediaType == "text/xml", strings.HasSuffix(mediaType, "+xml"):
		return FormatXML
	}
	return FormatUnknown
}

// Marshal encodes v in the given format. JSON output ends with a newline;
// XML output starts with the standard XML declaration.
func Marshal(f Format, v any) ([]byte, error) {
	switch f {
	case FormatJSON:
		js, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(js, '\n'), nil
	case FormatXML:
		body, err := xml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode xml: %w", err)
		}
		out := make([]byte, 0, len(xml.Header)+len(body)+1)
		out = append(out, xml.Header...)
		out = append(out, body...)
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: cannot encode format %q", ErrNotAcceptable, f)
	}
}
