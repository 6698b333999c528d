package format

import (
	"bytes"
	"encoding/json"
)

// MetadataMarker starts the metadata trailer of an exported file. The
// serialized metadata follows on the same line.
const MetadataMarker = "#PATH.JERRYIO-DATA "

// ReadMetadata extracts the JSON metadata following marker in buf. Strings
// inside instructions or inside the metadata itself may contain the marker
// text, so occurrences are tried from first to last and the first one
// followed by nothing but a JSON object wins. It reports false if there is
// no such occurrence; missing metadata is never an error, as the remainder
// of the file is meaningful without it.
func ReadMetadata(buf []byte, marker string) (map[string]any, bool) {
	if marker == "" {
		return nil, false
	}
	found := false
	for at := 0; ; {
		i := bytes.Index(buf[at:], []byte(marker))
		if i < 0 {
			break
		}
		found = true
		at += i + len(marker)
		var data map[string]any
		if err := json.Unmarshal(buf[at:], &data); err != nil {
			tracer().Debugf("no metadata at offset %d: %v", at, err)
			continue
		}
		if data == nil { // literal null
			continue
		}
		return data, true
	}
	if found {
		tracer().Infof("ignoring malformed metadata")
	} else {
		tracer().Debugf("no metadata marker found")
	}
	return nil, false
}

// AppendMetadata appends marker and the JSON serialization of the
// metadata of app to buf. A nil provider yields an empty JSON object.
func AppendMetadata(buf []byte, marker string, app *App) ([]byte, error) {
	data := map[string]any{}
	if app.Metadata != nil {
		m, err := app.Metadata.ExportMetadata()
		if err != nil {
			return nil, err
		}
		if m != nil {
			data = m
		}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	buf = append(buf, marker...)
	return append(buf, encoded...), nil
}
