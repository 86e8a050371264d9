package usecase

import (
	"github.com/bytedance/sonic"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/audit"
)

// SystemActorID marks audit rows written by scheduled jobs rather than a
// request principal.
const SystemActorID = "system"

func marshalAuditPayload(payload audit.Payload) string {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		// Payload values are plain structs and maps; marshal cannot
		// realistically fail. Keep the audit row rather than abort the
		// surrounding transaction.
		return `{"note":"payload serialization failed"}`
	}
	return string(raw)
}
