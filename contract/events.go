package contract

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/store"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
	"lukechampine.com/uint128"
)

const (
	EVENT_FT_MINT     = "ft_mint"
	EVENT_FT_BURN     = "ft_burn"
	EVENT_FT_TRANSFER = "ft_transfer"
)

type EventData struct {
	OwnerId    string `json:"owner_id,omitempty" msgpack:"owner_id,omitempty"`
	OldOwnerId string `json:"old_owner_id,omitempty" msgpack:"old_owner_id,omitempty"`
	NewOwnerId string `json:"new_owner_id,omitempty" msgpack:"new_owner_id,omitempty"`
	Amount     string `json:"amount" msgpack:"amount"`
	Memo       string `json:"memo,omitempty" msgpack:"memo,omitempty"`
}

// Event is a NEP-141 standard event.
type Event struct {
	Standard string      `json:"standard" msgpack:"standard"`
	Version  string      `json:"version" msgpack:"version"`
	Event    string      `json:"event" msgpack:"event"`
	Data     []EventData `json:"data" msgpack:"data"`
}

// EventLog is an event as recorded in the journal.
type EventLog struct {
	Seq       uint64 `json:"seq" msgpack:"seq"`
	Timestamp uint64 `json:"timestamp" msgpack:"timestamp"`
	Event     Event  `json:"event" msgpack:"event"`
}

func newEvent(name string, data EventData) Event {
	return Event{
		Standard: common.NEP141_STANDARD,
		Version:  common.NEP141_VERSION,
		Event:    name,
		Data:     []EventData{data},
	}
}

func NewFtMint(owner common.AccountId, amount uint128.Uint128, memo string) Event {
	return newEvent(EVENT_FT_MINT, EventData{OwnerId: string(owner), Amount: amount.String(), Memo: memo})
}

func NewFtBurn(owner common.AccountId, amount uint128.Uint128, memo string) Event {
	return newEvent(EVENT_FT_BURN, EventData{OwnerId: string(owner), Amount: amount.String(), Memo: memo})
}

func NewFtTransfer(from, to common.AccountId, amount uint128.Uint128, memo string) Event {
	return newEvent(EVENT_FT_TRANSFER, EventData{
		OldOwnerId: string(from),
		NewOwnerId: string(to),
		Amount:     amount.String(),
		Memo:       memo,
	})
}

// String renders the event as the standard log line.
func (e Event) String() string {
	buf, err := json.Marshal(e)
	if err != nil {
		return common.EVENT_JSON_PREFIX + "{}"
	}
	return common.EVENT_JSON_PREFIX + string(buf)
}

// EventJournal fans committed events out to the log and to subscribers.
type EventJournal struct {
	mu        sync.RWMutex
	listeners []func(*EventLog)
	logger    *logrus.Entry
}

func NewEventJournal() *EventJournal {
	return &EventJournal{logger: common.GetLoggerEntry("event")}
}

func (j *EventJournal) Subscribe(fn func(*EventLog)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.listeners = append(j.listeners, fn)
}

func (j *EventJournal) publish(ev *EventLog) {
	j.logger.Info(ev.Event.String())
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, fn := range j.listeners {
		fn(ev)
	}
}

// emit appends ev to the journal inside txn. It is published once txn
// commits.
func (p *Contract) emit(txn *store.Txn, env *Env, ev Event) error {
	var seq uint64
	err := txn.Get([]byte(DB_KEY_EVENT_SEQ), &seq)
	if err != nil && !errors.Is(err, common.ErrKeyNotFound) {
		return err
	}
	seq++

	rec := &EventLog{Seq: seq, Timestamp: env.Timestamp, Event: ev}
	buf, err := msgpack.Marshal(rec)
	if err != nil {
		return err
	}
	if err := txn.PutRaw(GetEventKey(seq), buf); err != nil {
		return err
	}
	if err := txn.Put([]byte(DB_KEY_EVENT_SEQ), seq); err != nil {
		return err
	}
	txn.OnCommit(func() { p.events.publish(rec) })
	return nil
}

var errStopScan = errors.New("stop")

// EventLogs returns up to limit journal entries starting at sequence start.
func (p *Contract) EventLogs(start uint64, limit int) ([]*EventLog, error) {
	if start == 0 {
		start = 1
	}
	result := make([]*EventLog, 0)
	err := p.view(func(txn *store.Txn) error {
		err := txn.Scan([]byte(DB_PREFIX_EVENT), GetEventKey(start), false, func(k, v []byte) error {
			if limit > 0 && len(result) >= limit {
				return errStopScan
			}
			var rec EventLog
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return err
			}
			result = append(result, &rec)
			return nil
		})
		if errors.Is(err, errStopScan) {
			return nil
		}
		return err
	})
	return result, err
}
