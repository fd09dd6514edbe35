package archive

import (
	"encoding/xml"
	"fmt"
)

// ComicInfo is the metadata document embedded in a CBZ. Empty fields are
// omitted from the output so readers fall back to their own defaults.
type ComicInfo struct {
	XMLName     xml.Name `xml:"ComicInfo"`
	Title       string   `xml:"Title,omitempty"`
	Series      string   `xml:"Series,omitempty"`
	Number      string   `xml:"Number,omitempty"`
	Summary     string   `xml:"Summary,omitempty"`
	Writer      string   `xml:"Writer,omitempty"`
	Penciller   string   `xml:"Penciller,omitempty"`
	Publisher   string   `xml:"Publisher,omitempty"`
	Genre       string   `xml:"Genre,omitempty"`
	LanguageISO string   `xml:"LanguageISO,omitempty"`
	Manga       string   `xml:"Manga,omitempty"`
	PageCount   int      `xml:"PageCount,omitempty"`
}

// comicInfoName is the entry name readers look for, case sensitive.
const comicInfoName = "ComicInfo.xml"

func (ci *ComicInfo) marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(ci, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal comic info: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
