package models

import "encoding/xml"

// LeaderboardEntry is the flat projection of a Score and its Gamer's nickname.
// It is built per request and never persisted.
type LeaderboardEntry struct {
	XMLName  xml.Name `json:"-" xml:"Highscore"`
	Game     string   `json:"game" xml:"Game"`
	Nickname string   `json:"nickname" xml:"Nickname"`
	Points   int      `json:"points" xml:"Points"`
}

// Leaderboard is the collection returned by the leaderboard endpoint.
// JSON renders it as a bare array; XML wraps it in <ArrayOfHighscore>.
type Leaderboard []LeaderboardEntry

type leaderboardXML struct {
	XMLName xml.Name           `xml:"ArrayOfHighscore"`
	Entries []LeaderboardEntry `xml:"Highscore"`
}

func (l Leaderboard) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.Encode(leaderboardXML{Entries: []LeaderboardEntry(l)})
}

func (l *Leaderboard) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var doc leaderboardXML
	if err := d.DecodeElement(&doc, &start); err != nil {
		return err
	}
	if doc.Entries == nil {
		doc.Entries = []LeaderboardEntry{}
	}
	*l = Leaderboard(doc.Entries)
	return nil
}
