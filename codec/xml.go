package codec

import (
	"errors"
	"fmt"

	"github.com/clbanning/mxj/v2"
	"github.com/poiesic/jsonstore/core"
)

// ErrNoRootElement is returned when a JSON document has to supply its own
// XML root element but does not have exactly one top-level key.
var ErrNoRootElement = errors.New("json document needs a single top-level key to name the xml root")

// JSONToXML converts a JSON object to XML.
//
// With an empty rootName the document must have exactly one top-level key,
// which becomes the root element. Otherwise the whole document is wrapped in
// a rootName element.
func JSONToXML(doc, rootName string) (string, error) {
	if doc == "" {
		return "", fmt.Errorf("%w: json is required", core.ErrInvalidArgument)
	}
	m, err := mxj.NewMapJson([]byte(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}

	var data []byte
	if rootName == "" {
		if len(m) != 1 {
			return "", ErrNoRootElement
		}
		data, err = m.Xml()
	} else {
		data, err = m.Xml(rootName)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return string(data), nil
}

// XMLToJSON converts an XML document to JSON. Element text is kept as
// strings and attributes become keys prefixed with "-".
func XMLToJSON(doc string) (string, error) {
	if doc == "" {
		return "", fmt.Errorf("%w: xml is required", core.ErrInvalidArgument)
	}
	m, err := mxj.NewMapXml([]byte(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	data, err := m.Json()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return string(data), nil
}
