/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package geo enriches readings that arrive without coordinates using a
// local MaxMind database keyed on the reporting address. Lookup failures
// leave the reading unenriched; location is always best-effort.
package geo

import (
	"errors"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

var (
	ErrInvalidAddress = errors.New("geo: invalid remote address")
	ErrNotFound       = errors.New("geo: no location for address")
)

// Location is the subset of GeoIP data the ingestion path uses.
type Location struct {
	Latitude    float64
	Longitude   float64
	CountryCode string
}

// Locator resolves a remote address to an approximate location.
type Locator interface {
	Locate(remoteAddr string) (*Location, error)
	Close() error
}

type cityRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
	Location struct {
		Latitude  float64 `maxminddb:"latitude"`
		Longitude float64 `maxminddb:"longitude"`
	} `maxminddb:"location"`
}

type mmdbLocator struct {
	reader *maxminddb.Reader
}

// Open loads a MaxMind city database from disk.
func Open(path string) (Locator, error) {
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, err
	}

	return &mmdbLocator{reader: reader}, nil
}

func (l *mmdbLocator) Locate(remoteAddr string) (*Location, error) {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil, ErrInvalidAddress
	}

	var record cityRecord
	if err := l.reader.Lookup(ip, &record); err != nil {
		return nil, err
	}

	if record.Country.ISOCode == "" &&
		record.Location.Latitude == 0 && record.Location.Longitude == 0 {
		return nil, ErrNotFound
	}

	return &Location{
		Latitude:    record.Location.Latitude,
		Longitude:   record.Location.Longitude,
		CountryCode: record.Country.ISOCode,
	}, nil
}

func (l *mmdbLocator) Close() error {
	return l.reader.Close()
}

// Disabled is a Locator that never resolves; used when no database is
// configured.
type Disabled struct{}

func (Disabled) Locate(string) (*Location, error) { return nil, ErrNotFound }

func (Disabled) Close() error { return nil }
