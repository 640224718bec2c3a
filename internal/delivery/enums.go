//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package delivery

// Outcome classifies the result of one delivery attempt
// ENUM(delivered,rate_limited,unreachable,failed)
type Outcome string
