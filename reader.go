package emrtd

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/skythen/emrtd/access"
	"github.com/skythen/emrtd/apducat"
	"github.com/skythen/emrtd/chipauth"
	"github.com/skythen/emrtd/lds"
	"github.com/skythen/emrtd/pa"
	"github.com/skythen/emrtd/params"
	"github.com/skythen/emrtd/securemessaging"
)

// session is the mutable secure-channel state a read carries across
// access control, Chip Authentication and every Data Group read.
// Re-keying (Chip Authentication succeeding, or a per-DG remediation
// falling back to BAC) replaces both fields together and zeroizes
// whatever channel it supersedes.
type session struct {
	secure  *securemessaging.SecureTransmitter
	channel *securemessaging.Keys
	caDone  bool
}

func (s *session) rekey(keys *securemessaging.Keys, raw Transport) {
	if s.channel != nil {
		s.channel.Zeroize()
	}
	s.channel = keys
	s.secure = &securemessaging.SecureTransmitter{Raw: raw, Keys: keys}
}

// Read performs a complete eMRTD read: it discovers and runs the
// chip's preferred access-control protocol, establishes the secure
// channel, attempts Chip Authentication where DG14 advertises it,
// reads every Data Group EF.COM declares present, and runs Passive
// Authentication against EF.SOD. It returns as much of Model as it
// managed to assemble even when the returned error is non-nil; only
// a failed SELECT of the eMRTD application, the exhaustion of every
// access-control path, or an unreadable EF.COM abort the read outright.
func Read(t Transport, mrzKey string, cfg ReaderConfig, onStage StageFunc, onProgress ProgressFunc) (*Model, error) {
	cfg = cfg.withDefaults()
	if onStage == nil {
		onStage = noopStage
	}
	if onProgress == nil {
		onProgress = noopProgress
	}

	log := cfg.Logger
	model := newModel()

	onStage(StageEvent{Stage: StageRequestPresent})

	cardAccess := readCardAccess(t, log)

	onStage(StageEvent{Stage: StageAuthenticating})

	sess := &session{}
	model.PACEStatus = StatusNotAttempted
	model.BACStatus = StatusNotAttempted

	if cardAccess != nil && len(cardAccess.PACEInfos) > 0 {
		if err := lds.SelectApplication(t); err != nil {
			return model, errors.Wrap(err, "SELECT application for PACE")
		}

		info := cardAccess.PACEInfos[0]
		keys, err := access.RunPACE(t, mrzKey, access.PACEInfo{OID: info.OID, ParameterID: info.ParameterID}, cfg.Rand)
		if err != nil {
			log.Warn("PACE failed, falling back to BAC", "error", err)
			model.PACEStatus = StatusFailed
		} else {
			model.PACEStatus = StatusSuccess
			sess.rekey(keys, t)
		}
	} else {
		model.PACEStatus = StatusNotSupported
	}

	if sess.channel == nil {
		if err := lds.SelectApplication(t); err != nil {
			return model, errors.Wrap(err, "SELECT application for BAC")
		}

		keys, err := access.RunBAC(t, mrzKey, cfg.Rand)
		if err != nil {
			model.BACStatus = StatusFailed
			onStage(StageEvent{Stage: StageError, Err: err})
			return model, errors.Wrap(err, "BAC")
		}
		model.BACStatus = StatusSuccess
		sess.rekey(keys, t)
	}

	onStage(StageEvent{Stage: StageReading, DGTag: lds.TagCOM})

	comEFID, _ := lds.EFIDByTag(lds.TagCOM)
	comRaw, err := lds.ReadFile(sess.secure, comEFID)
	if err != nil {
		onStage(StageEvent{Stage: StageError, Err: err})
		return model, errors.Wrap(err, "read EF.COM")
	}
	com, err := lds.DecodeCOM(comRaw)
	if err != nil {
		onStage(StageEvent{Stage: StageError, Err: err})
		return model, errors.Wrap(err, "decode EF.COM")
	}
	model.COM = com
	model.DataGroups[lds.TagCOM] = &lds.DataGroup{Tag: lds.TagCOM, Raw: comRaw, COM: com}

	runChipAuthenticationPhase(t, sess, com, model, mrzKey, cfg, onStage, onProgress, log)

	for _, tag := range com.PresentTags {
		if tag == lds.TagCOM || tag == lds.TagDG14 || tag == lds.TagSOD {
			continue
		}

		onStage(StageEvent{Stage: StageReading, DGTag: tag})

		raw, err := readDataGroupWithRemediation(t, sess, tag, mrzKey, cfg, onProgress)
		if err != nil {
			model.Skipped[tag] = err
			log.Warn("skipping data group", "tag", tag, "error", err)
			continue
		}

		model.DataGroups[tag] = &lds.DataGroup{Tag: tag, Raw: raw}
	}

	runPassiveAuthenticationPhase(sess, model, log)

	onStage(StageEvent{Stage: StageSuccess})

	return model, nil
}

// readCardAccess is best-effort: a chip with no PACE support, or one
// that simply has no EF.CardAccess outside the application, leaves
// cardAccess nil and the caller falls straight to BAC.
func readCardAccess(t Transport, log *slog.Logger) *lds.CardAccess {
	if err := lds.SelectMasterFile(t); err != nil {
		log.Debug("SELECT master file failed, EF.CardAccess unavailable", "error", err)
		return nil
	}

	raw, err := lds.ReadFile(t, lds.EFCardAccessID)
	if err != nil {
		log.Debug("EF.CardAccess not available", "error", err)
		return nil
	}

	cardAccess, err := lds.DecodeCardAccess(raw)
	if err != nil {
		log.Warn("decode EF.CardAccess failed", "error", err)
		return nil
	}

	return cardAccess
}

// runChipAuthenticationPhase reads EF.DG14 if EF.COM declares it
// present and, when it carries a static public key, runs Chip
// Authentication and re-keys the channel on success. A CA failure is
// not terminal: per the remediation policy every other protocol
// failure follows, the read falls back to a fresh BAC run and
// continues rather than aborting.
func runChipAuthenticationPhase(t Transport, sess *session, com *lds.COM, model *Model, mrzKey string, cfg ReaderConfig, onStage StageFunc, onProgress ProgressFunc, log *slog.Logger) {
	model.CAStatus = StatusNotAttempted

	hasDG14 := false
	for _, tag := range com.PresentTags {
		if tag == lds.TagDG14 {
			hasDG14 = true
			break
		}
	}
	if !hasDG14 {
		model.CAStatus = StatusNotSupported
		return
	}

	onStage(StageEvent{Stage: StageReading, DGTag: lds.TagDG14})

	dg14EFID, _ := lds.EFIDByTag(lds.TagDG14)
	dg14Raw, err := lds.ReadFileChunkedWithProgress(sess.secure, dg14EFID, cfg.ChunkSize, progressCallback(lds.TagDG14, onProgress))
	if err != nil {
		model.Skipped[lds.TagDG14] = err
		model.CAStatus = StatusFailed
		return
	}

	dg14, err := lds.DecodeDG14(dg14Raw)
	if err != nil {
		model.Skipped[lds.TagDG14] = err
		model.CAStatus = StatusFailed
		return
	}
	model.DG14 = dg14
	model.DataGroups[lds.TagDG14] = &lds.DataGroup{Tag: lds.TagDG14, Raw: dg14Raw, DG14: dg14}

	if len(dg14.PublicKeys) == 0 {
		model.CAStatus = StatusNotSupported
		return
	}

	newKeys, err := runChipAuthentication(sess.secure, dg14, cfg.Rand)
	if err != nil {
		log.Warn("Chip Authentication failed, re-running BAC", "error", err)
		model.CAStatus = StatusFailed

		if rekeyErr := rekeyBAC(t, sess, mrzKey, cfg); rekeyErr != nil {
			log.Warn("re-BAC after Chip Authentication failure also failed", "error", rekeyErr)
			model.BACStatus = StatusFailed
		}
		return
	}

	model.CAStatus = StatusSuccess
	sess.caDone = true
	sess.rekey(newKeys, t)
}

// runChipAuthentication builds the chipauth.StaticKey the spec's
// DG14-published ChipAuthenticationPublicKeyInfo describes and runs
// Chip Authentication against it, resolving the protocol from
// whichever ChipAuthenticationInfo matches the key's keyId (or the
// 3DES default when none does).
func runChipAuthentication(t chipauth.Transmitter, dg14 *lds.DG14, rnd io.Reader) (*securemessaging.Keys, error) {
	pk := dg14.PublicKeys[0]

	key := chipauth.StaticKey{KeyAgreement: pk.KeyAgreement, KeyID: -1}

	var keyIDPtr *int64
	if pk.HasKeyID {
		key.KeyID = pk.KeyID
		id := pk.KeyID
		keyIDPtr = &id
	}

	switch pk.KeyAgreement {
	case params.KeyAgreementDH:
		key.DH = pk.DH
		key.DHPub = pk.DHPub
	case params.KeyAgreementECDH:
		group, ok := params.CurveByOID(pk.CurveOID)
		if !ok {
			return nil, errors.Errorf("chip authentication: unregistered named curve %s", pk.CurveOID)
		}
		key.Curve = group.Curve
		key.ECPub = pk.ECPub
	default:
		return nil, errors.New("chip authentication: static key has no recognized key-agreement type")
	}

	infos := make([]params.CAAlgorithm, len(dg14.CAInfos))
	infoKeyIDs := make([]int64, len(dg14.CAInfos))
	for i, info := range dg14.CAInfos {
		infos[i] = info.Algorithm
		infoKeyIDs[i] = -1
		if info.HasKeyID {
			infoKeyIDs[i] = info.KeyID
		}
	}

	algo, err := chipauth.ResolveAlgorithm(key, infos, infoKeyIDs)
	if err != nil {
		return nil, err
	}

	return chipauth.Run(t, algo, key, keyIDPtr, rnd)
}

// readDataGroupWithRemediation reads one Data Group, applying the
// reader's per-failure remediation: security-status and file-not-found
// failures are not worth retrying and are surfaced immediately;
// incorrect-SM-data-object, wrong-length and (once Chip Authentication
// has run) class-not-supported all indicate the secure channel needs
// re-establishing, so it re-runs BAC and retries; anything else is
// surfaced without a retry. MaxDGAttempts bounds the total number of
// READ BINARY attempts this DG gets.
func readDataGroupWithRemediation(t Transport, sess *session, tag lds.Tag, mrzKey string, cfg ReaderConfig, onProgress ProgressFunc) ([]byte, error) {
	efID, ok := lds.EFIDByTag(tag)
	if !ok {
		return nil, errors.Errorf("no elementary file identifier registered for %s", tag)
	}

	chunk := cfg.ChunkSize
	var lastErr error

	for attempt := 0; attempt < cfg.MaxDGAttempts; attempt++ {
		raw, err := lds.ReadFileChunkedWithProgress(sess.secure, efID, chunk, progressCallback(tag, onProgress))
		if err == nil {
			return raw, nil
		}
		lastErr = err

		var cmdErr *lds.CommandError
		if !errors.As(err, &cmdErr) {
			return nil, err
		}

		status := apducat.DecodeStatus(cmdErr.SW1, cmdErr.SW2)

		switch status.Kind {
		case apducat.StatusFileNotFound, apducat.StatusSecurityStatusNotSatisfied:
			return nil, err

		case apducat.StatusClassNotSupported:
			if !sess.caDone {
				return nil, err
			}
			if rekeyErr := rekeyBAC(t, sess, mrzKey, cfg); rekeyErr != nil {
				return nil, rekeyErr
			}

		case apducat.StatusIncorrectSMDataObject:
			if rekeyErr := rekeyBAC(t, sess, mrzKey, cfg); rekeyErr != nil {
				return nil, rekeyErr
			}

		case apducat.StatusWrongLength:
			chunk = lds.DefaultChunkSize
			if rekeyErr := rekeyBAC(t, sess, mrzKey, cfg); rekeyErr != nil {
				return nil, rekeyErr
			}

		default:
			return nil, err
		}
	}

	return nil, lastErr
}

// rekeyBAC re-selects the eMRTD application and runs BAC fresh over
// the plain transport, replacing sess's channel. A Data Group read
// that falls back to this loses whatever Chip Authentication had
// established; sess.caDone is deliberately left set, since the class-
// not-supported remediation path only applies once per the policy
// table regardless of how the channel was most recently established.
func rekeyBAC(t Transport, sess *session, mrzKey string, cfg ReaderConfig) error {
	if err := lds.SelectApplication(t); err != nil {
		return errors.Wrap(err, "re-SELECT application")
	}

	keys, err := access.RunBAC(t, mrzKey, cfg.Rand)
	if err != nil {
		return errors.Wrap(err, "re-BAC")
	}

	sess.rekey(keys, t)
	return nil
}

// runPassiveAuthenticationPhase reads EF.SOD and, if it decodes,
// verifies it against every Data Group obtained so far. Both an
// unreadable EF.SOD and a failed verification are recorded on the
// model rather than returned as an error: per the propagation policy,
// Passive Authentication failing does not invalidate the rest of a
// completed read.
func runPassiveAuthenticationPhase(sess *session, model *Model, log *slog.Logger) {
	model.PAStatus = StatusNotAttempted

	sodEFID, _ := lds.EFIDByTag(lds.TagSOD)
	sodRaw, err := lds.ReadFile(sess.secure, sodEFID)
	if err != nil {
		model.Skipped[lds.TagSOD] = err
		log.Warn("EF.SOD unavailable, Passive Authentication cannot run", "error", err)
		return
	}

	sod, err := lds.DecodeSOD(sodRaw)
	if err != nil {
		model.Skipped[lds.TagSOD] = err
		model.PAStatus = StatusFailed
		log.Warn("decode EF.SOD failed", "error", err)
		return
	}
	model.SOD = sod
	model.DataGroups[lds.TagSOD] = &lds.DataGroup{Tag: lds.TagSOD, Raw: sodRaw, SOD: sod}

	dgBytes := make(map[lds.Tag][]byte, len(model.DataGroups))
	for tag, dg := range model.DataGroups {
		dgBytes[tag] = dg.Raw
	}

	if err := pa.Verify(sod, dgBytes); err != nil {
		model.PAStatus = StatusFailed
		log.Warn("Passive Authentication failed", "error", err)
		return
	}

	model.PAStatus = StatusSuccess
}

// progressCallback adapts the per-file progress lds.ReadFileChunked
// reports into the percentage the host callback expects.
func progressCallback(tag lds.Tag, onProgress ProgressFunc) func(have, total int) {
	return func(have, total int) {
		percent := 0
		if total > 0 {
			percent = have * 100 / total
		}
		onProgress(tag, percent)
	}
}
