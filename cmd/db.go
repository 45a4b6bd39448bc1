package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/config"
	"github.com/sat20-labs/emission/contract"
	"github.com/sat20-labs/emission/main/g"
	"lukechampine.com/uint128"
)

func dumpState(conf *config.YamlConf, w io.Writer, state bool, from uint64, limit int) error {
	if _, err := os.Stat(conf.DB.Path); os.IsNotExist(err) {
		return fmt.Errorf("dumpState-> db directory isn't exist: %v", conf.DB.Path)
	} else if err != nil {
		return err
	}

	c, _, err := g.OpenContract(conf)
	if err != nil {
		return err
	}
	if state {
		if err := printSnapshot(c, w); err != nil {
			return err
		}
	}
	if from > 0 {
		return printEvents(c, w, from, limit)
	}
	return nil
}

func printSnapshot(c *contract.Contract, w io.Writer) error {
	s, err := c.Snapshot()
	if err != nil {
		return err
	}
	meta, err := c.FtMetadata()
	if err != nil {
		return err
	}
	amount := func(v uint128.Uint128) string {
		return fmt.Sprintf("%s (%s %s)", v, common.FormatAmount(v, meta.Decimals), meta.Symbol)
	}
	fmt.Fprintf(w, "owner:            %s\n", s.Owner)
	if s.Candidate != "" {
		fmt.Fprintf(w, "proposed owner:   %s\n", s.Candidate)
	}
	fmt.Fprintf(w, "total supply:     %s\n", amount(s.TotalSupply))
	fmt.Fprintf(w, "owner balance:    %s\n", amount(s.OwnerBalance))
	if e := s.Emissions; e != nil {
		fmt.Fprintf(w, "month:            %d\n", e.CurrentMonth)
		fmt.Fprintf(w, "emissions:        %d (initial %d, decay %v)\n", e.CurrentEmissions, e.InitialEmissions, e.DecayFactor)
		fmt.Fprintf(w, "last mint:        %d\n", e.LastMintTimestamp)
	}
	if r := s.Raffle; r != nil {
		fmt.Fprintf(w, "raffle pool %d:    %s, total %s\n", r.PoolId, amount(r.Amount), amount(r.TotalAmount))
	}
	if t := s.Tapping; t != nil {
		fmt.Fprintf(w, "tapping pool %d:   %s\n", t.PoolId, amount(t.Amount))
	}
	return nil
}

func printEvents(c *contract.Contract, w io.Writer, from uint64, limit int) error {
	logs, err := c.EventLogs(from, limit)
	if err != nil {
		return err
	}
	for _, l := range logs {
		fmt.Fprintf(w, "%d %d %s\n", l.Seq, l.Timestamp, l.Event.String())
	}
	return nil
}
