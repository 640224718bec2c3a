//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ChatKind tells where an inbound message came from
// ENUM(private,group,supergroup,channel)
type ChatKind string
