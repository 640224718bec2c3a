//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// MediaKind represents the type of content a payload replays
// ENUM(text,photo,video,document,other)
type MediaKind string
