package mirdip_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	mirdip "github.com/slobentanzer/mirdip-adapter"
)

func TestParseDefaultLayout(t *testing.T) {
	tests := []struct {
		line   string
		exp    mirdip.Record
		expErr error
	}{
		{
			line: "TP53\thsa-miR-21-5p\t0.8\tTargetScan",
			exp: mirdip.Record{
				GeneSymbol: "TP53",
				MicroRNA:   "hsa-miR-21-5p",
				Score:      0.8,
				HasScore:   true,
				Sources:    []string{"TargetScan"},
			},
		},
		{
			line: "EGFR\thsa-miR-7-5p\t0.33\tTargetScan,miRanda,TargetScan",
			exp: mirdip.Record{
				GeneSymbol: "EGFR",
				MicroRNA:   "hsa-miR-7-5p",
				Score:      0.33,
				HasScore:   true,
				Sources:    []string{"TargetScan", "miRanda"},
			},
		},
		{
			// score is optional
			line: "EGFR\thsa-miR-7-5p\t\tmiRanda",
			exp: mirdip.Record{
				GeneSymbol: "EGFR",
				MicroRNA:   "hsa-miR-7-5p",
				Sources:    []string{"miRanda"},
			},
		},
		{
			line:   "TP53\thsa-miR-21-5p\t0.8",
			expErr: mirdip.ErrMalformedRow,
		},
		{
			line:   "TP53\thsa-miR-21-5p\t0.8\tTargetScan\textra",
			expErr: mirdip.ErrMalformedRow,
		},
		{
			line:   "\thsa-miR-21-5p\t0.8\tTargetScan",
			expErr: mirdip.ErrMalformedRow,
		},
		{
			line:   "TP53\thsa-miR-21-5p\tnotanumber\tTargetScan",
			expErr: mirdip.ErrInvalidScore,
		},
		{
			line:   "TP53\thsa-miR-21-5p\t-0.5\tTargetScan",
			expErr: mirdip.ErrInvalidScore,
		},
		{
			line:   "TP53\thsa-miR-21-5p\tNaN\tTargetScan",
			expErr: mirdip.ErrInvalidScore,
		},
		{
			line:   "TP53\thsa-miR-21-5p\t+Inf\tTargetScan",
			expErr: mirdip.ErrInvalidScore,
		},
	}

	p := mirdip.NewParser(nil)
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			rec, err := p.Parse(mirdip.RawRecord{Text: test.line, File: "f.txt", Line: i + 1})
			if test.expErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got record %#v", test.expErr, rec)
				}
				if errors.Cause(err) != test.expErr {
					t.Fatalf("expected cause %v, got %v", test.expErr, err)
				}
				re, ok := err.(*mirdip.RowError)
				if !ok {
					t.Fatalf("expected *RowError, got %T", err)
				}
				if re.File != "f.txt" || re.Line != i+1 || re.Raw != test.line {
					t.Fatalf("row error context wrong: %#v", re)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsing: %v", err)
			}
			test.exp.File, test.exp.Line = "f.txt", i+1
			if !reflect.DeepEqual(rec, test.exp) {
				t.Fatalf("expected %#v, got %#v", test.exp, rec)
			}
		})
	}
}

func TestParseFullLayout(t *testing.T) {
	p := mirdip.NewParser(mirdip.FullColumns)
	line := "AKT1\thsa-miR-149-3p\t0.0123\t0.91\tmiRanda,PITA\tAKT1\tHSA-MIR-149-3P\tVery High"
	rec, err := p.Parse(mirdip.RawRecord{Text: line, File: "full.txt", Line: 1})
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if rec.GeneSymbol != "AKT1" || rec.GeneSymbolOri != "AKT1" {
		t.Fatalf("gene symbols wrong: %#v", rec)
	}
	if rec.MicroRNA != "hsa-miR-149-3p" || rec.MicroRNAOri != "HSA-MIR-149-3P" {
		t.Fatalf("mirnas wrong: %#v", rec)
	}
	if !rec.HasRank || rec.Rank != 0.0123 {
		t.Fatalf("rank wrong: %#v", rec)
	}
	if !rec.HasScore || rec.Score != 0.91 {
		t.Fatalf("score wrong: %#v", rec)
	}
	if rec.ScoreClass != "Very High" {
		t.Fatalf("score class wrong: %#v", rec)
	}
	if !reflect.DeepEqual(rec.Sources, []string{"miRanda", "PITA"}) {
		t.Fatalf("sources wrong: %#v", rec.Sources)
	}
}

func TestParseBadRank(t *testing.T) {
	p := mirdip.NewParser(mirdip.FullColumns)
	line := "AKT1\thsa-miR-149-3p\tbogus\t0.91\tmiRanda\tAKT1\thsa-miR-149-3p\tHigh"
	_, err := p.Parse(mirdip.RawRecord{Text: line, File: "full.txt", Line: 7})
	if errors.Cause(err) != mirdip.ErrInvalidScore {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}
}
