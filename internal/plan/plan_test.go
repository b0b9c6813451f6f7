package plan

import (
	"errors"
	"strings"
	"testing"
)

func TestReadGroupsRowsByHost(t *testing.T) {
	csvData := `host,interface,description
10.0.0.1,Gi1/0/1,PC-01
10.0.0.2,Gi1/0/3,Printer-03
10.0.0.1,Gi1/0/2,blank
`
	p, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	hosts := p.Hosts()
	if len(hosts) != 2 {
		t.Fatalf("expected 2 hosts, got %d", len(hosts))
	}
	if hosts[0] != "10.0.0.1" || hosts[1] != "10.0.0.2" {
		t.Fatalf("unexpected host order: %v", hosts)
	}

	entries := p.Entries("10.0.0.1")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for 10.0.0.1, got %d", len(entries))
	}
	if entries[0].Interface != "Gi1/0/1" || entries[0].Description != "PC-01" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Interface != "Gi1/0/2" || entries[1].Description != "blank" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestReadTrimsFieldsAndSkipsIncompleteRows(t *testing.T) {
	csvData := `host,interface,description
 10.0.0.1 , Gi1/0/1 , PC-01
10.0.0.1,,missing-interface
,Gi1/0/9,missing-host
10.0.0.1,Gi1/0/2,
`
	p, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	entries := p.Entries("10.0.0.1")
	if len(entries) != 1 {
		t.Fatalf("expected only the complete row to survive, got %d entries", len(entries))
	}
	if entries[0].Interface != "Gi1/0/1" || entries[0].Description != "PC-01" {
		t.Fatalf("fields were not trimmed: %+v", entries[0])
	}
}

func TestReadHeaderByNameNotPosition(t *testing.T) {
	csvData := `description,host,interface
PC-01,10.0.0.1,Gi1/0/1
`
	p, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	entries := p.Entries("10.0.0.1")
	if len(entries) != 1 || entries[0].Description != "PC-01" {
		t.Fatalf("columns not matched by header name: %+v", entries)
	}
}

func TestReadNoUsableRows(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"empty file", ""},
		{"header only", "host,interface,description\n"},
		{"all rows incomplete", "host,interface,description\n10.0.0.1,,\n,,\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.csv))
			if !errors.Is(err, ErrNoUsableRows) {
				t.Fatalf("expected ErrNoUsableRows, got %v", err)
			}
		})
	}
}

func TestReadMissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("host,interface\n10.0.0.1,Gi1/0/1\n"))
	if err == nil {
		t.Fatal("expected error for missing description column")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
