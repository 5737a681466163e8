// Package emrtd orchestrates the full eMRTD read: discovering access
// parameters, running PACE or BAC, optionally running Chip
// Authentication, reading every present Data Group, and verifying
// Passive Authentication. The protocol packages underneath (access,
// chipauth, securemessaging, lds, pa) do the cryptography; this
// package sequences them into the state machine a caller actually
// wants to drive a single read with.
package emrtd

import "github.com/skythen/emrtd/lds"

// Model is everything a completed (or partially completed) read
// produced: the decoded files, and the four-valued status of every
// protocol phase that ran or was skipped.
type Model struct {
	COM *lds.COM
	SOD *lds.SOD

	// DataGroups holds every Data Group successfully read, keyed by
	// tag, including COM and SOD under their own tags. DG14 is
	// also decoded into the DG14 field; DGs this module doesn't parse (DG1-13,
	// DG15-16) carry only their raw BER bytes.
	DataGroups map[lds.Tag]*lds.DataGroup
	DG14       *lds.DG14

	PACEStatus ProtocolStatus
	BACStatus  ProtocolStatus
	CAStatus   ProtocolStatus
	PAStatus   ProtocolStatus

	// Skipped lists Data Groups EF.COM declared present that this
	// read did not obtain, with the reason (per-DG remediation gave
	// up, or the chip reported file-not-found/security-status).
	Skipped map[lds.Tag]error
}

func newModel() *Model {
	return &Model{
		DataGroups: make(map[lds.Tag]*lds.DataGroup),
		Skipped:    make(map[lds.Tag]error),
	}
}
