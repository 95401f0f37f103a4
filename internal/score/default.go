package score

import (
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/game"
)

// Store keeps the inputs of every performance in sqlite, keyed by the
// hash of the chart they were played on.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

type InputsCompact struct {
	Index int
	Kind  game.ActionKind
	Times []float64
}

// compactInputs groups action times by column and kind, in column then
// kind order.
func compactInputs(actions []game.Action) []InputsCompact {
	ins := []InputsCompact{}
	at := map[[2]int]int{}
	for _, a := range actions {
		key := [2]int{a.Column, int(a.Kind)}
		i, ok := at[key]
		if !ok {
			i = len(ins)
			at[key] = i
			ins = append(ins, InputsCompact{Index: a.Column, Kind: a.Kind})
		}
		ins[i].Times = append(ins[i].Times, a.Seconds)
	}
	sort.SliceStable(ins, func(i, j int) bool {
		if ins[i].Index != ins[j].Index {
			return ins[i].Index < ins[j].Index
		}
		return ins[i].Kind < ins[j].Kind
	})
	return ins
}

// uncompactInputs returns the actions in time order.
func uncompactInputs(inputs []InputsCompact) []game.Action {
	actions := []game.Action{}
	for _, i := range inputs {
		for _, t := range i.Times {
			actions = append(actions, game.Action{Column: i.Index, Kind: i.Kind, Seconds: t})
		}
	}
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Seconds < actions[j].Seconds })
	return actions
}

func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %v", path)
	}

	initStatement := `
	create table if not exists scores 
	  (
		  id integer not null primary key, 
		  sum text,
		  rate real,
		  played integer,
		  inputs bytearray
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrapf(err, "could not create tables in %v", path)
	}

	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(c *chart.Chart, actions []game.Action, rate float64) error {
	if c.Hash == "" {
		return errors.New("chart has no hash")
	}
	data, err := json.Marshal(compactInputs(actions))
	if nil != err {
		return errors.Wrap(err, "unable to marshal inputs")
	}
	_, err = s.db.Exec("insert into scores(sum, rate, played, inputs) values(?, ?, ?, ?)",
		c.Hash, rate, time.Now().Unix(), data)
	if nil != err {
		return errors.Wrap(err, "unable to save score")
	}
	s.log.Debug("saved inputs", zap.String("sum", c.Hash), zap.Int("actions", len(actions)))
	return nil
}

// Load returns the stored performances of c, oldest first. Rows that can
// not be decoded are skipped.
func (s *Store) Load(c *chart.Chart) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query("select sum, rate, played, inputs from scores where sum = ? order by id", c.Hash)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load scores")
	}
	defer rows.Close()
	for rows.Next() {
		var sum string
		var notes []byte
		var rate float64
		var played int64
		if err := rows.Scan(&sum, &rate, &played, &notes); nil != err {
			return nil, errors.Wrap(err, "unable to read score")
		}
		var ns []InputsCompact
		if err := json.Unmarshal(notes, &ns); nil != err {
			s.log.Warn("unable to unmarshal input history", zap.String("sum", sum), zap.Error(err))
			continue
		}
		histories = append(histories, History{
			Sum:     sum,
			Actions: uncompactInputs(ns),
			Rate:    rate,
			Played:  time.Unix(played, 0),
		})
	}
	return histories, errors.Wrap(rows.Err(), "unable to load scores")
}
