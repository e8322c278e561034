package order

// Externally pre-settled delivery channels are third-party partners that
// collect payment on their own platform. Orders routed through them are
// exempt from the normal payment and phone requirements, and their payment
// status is reported as settled regardless of payment rows.
//
// Channels are recognized by the effective location name, matching the
// catalog entries the partners are registered under.
var externalChannelNames = map[string]struct{}{
	"Bolt Delivery": {},
	"WIX Delivery":  {},
}

// IsExternalChannelName reports whether a location name identifies an
// externally pre-settled delivery channel.
func IsExternalChannelName(name string) bool {
	_, ok := externalChannelNames[name]
	return ok
}
