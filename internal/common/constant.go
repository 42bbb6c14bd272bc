// Package common contains shared constants and sentinel errors used across
// walletcore components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the slot
// server access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// SlotHeaderName is the gRPC metadata key naming the slot a remote storage
// call operates on.
const SlotHeaderName = "slot-id"
