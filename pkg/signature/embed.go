package signature

import "embed"

// builtinSignaturesFS embeds the built-in signatures directory.
//
//go:embed signatures/*.yml
var builtinSignaturesFS embed.FS
