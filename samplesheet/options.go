// samplesheet: a sample sheet engine for sequencing run demultiplexing.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elprep/blob/master/LICENSE.txt>.

package samplesheet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default column, section and keyword names of Illumina sample sheets.
const (
	DefaultDataSection       = "Data"
	DefaultHeaderSection     = "Header"
	DefaultPlatformField     = "Application"
	DefaultProjectColumn     = "Sample_Project"
	DefaultDescriptionColumn = "Description"
	DefaultSingleCellKeyword = "10X"
	DefaultLaneColumn        = "Lane"
	DefaultPlatformPrefix    = "HiSeq"
	DefaultLane              = "1"
	DefaultIndexColumn       = "index"
	DefaultIndex2Column      = "index2"

	SampleIDColumn   = "Sample_ID"
	SampleNameColumn = "Sample_Name"
	I5IndexIDColumn  = "I5_Index_ID"
	PseudoLaneColumn = "PseudoLane"
)

// DefaultPseudoLanes are the lanes of a four-lane NextSeq flow cell.
var DefaultPseudoLanes = []string{"1", "2", "3", "4"}

// Options configures how a sample sheet is read and interpreted.
type Options struct {
	DataSection       string   `yaml:"data_section"`
	HeaderSection     string   `yaml:"header_section"`
	PlatformField     string   `yaml:"platform_field"`
	ProjectColumn     string   `yaml:"project_column"`
	DescriptionColumn string   `yaml:"description_column"`
	SingleCellKeyword string   `yaml:"single_cell_keyword"`
	LaneColumn        string   `yaml:"lane_column"`
	PlatformPrefix    string   `yaml:"platform_prefix"`
	DefaultLane       string   `yaml:"default_lane"`
	PseudoLanes       []string `yaml:"pseudo_lanes"`
}

// DefaultOptions returns the options for standard Illumina sample
// sheets.
func DefaultOptions() Options {
	return Options{
		DataSection:       DefaultDataSection,
		HeaderSection:     DefaultHeaderSection,
		PlatformField:     DefaultPlatformField,
		ProjectColumn:     DefaultProjectColumn,
		DescriptionColumn: DefaultDescriptionColumn,
		SingleCellKeyword: DefaultSingleCellKeyword,
		LaneColumn:        DefaultLaneColumn,
		PlatformPrefix:    DefaultPlatformPrefix,
		DefaultLane:       DefaultLane,
		PseudoLanes:       append([]string(nil), DefaultPseudoLanes...),
	}
}

// withDefaults fills in every unset field from DefaultOptions.
func (opts Options) withDefaults() Options {
	def := DefaultOptions()
	if opts.DataSection == "" {
		opts.DataSection = def.DataSection
	}
	if opts.HeaderSection == "" {
		opts.HeaderSection = def.HeaderSection
	}
	if opts.PlatformField == "" {
		opts.PlatformField = def.PlatformField
	}
	if opts.ProjectColumn == "" {
		opts.ProjectColumn = def.ProjectColumn
	}
	if opts.DescriptionColumn == "" {
		opts.DescriptionColumn = def.DescriptionColumn
	}
	if opts.SingleCellKeyword == "" {
		opts.SingleCellKeyword = def.SingleCellKeyword
	}
	if opts.LaneColumn == "" {
		opts.LaneColumn = def.LaneColumn
	}
	if opts.PlatformPrefix == "" {
		opts.PlatformPrefix = def.PlatformPrefix
	}
	if opts.DefaultLane == "" {
		opts.DefaultLane = def.DefaultLane
	}
	if len(opts.PseudoLanes) == 0 {
		opts.PseudoLanes = def.PseudoLanes
	} else {
		opts.PseudoLanes = append([]string(nil), opts.PseudoLanes...)
	}
	return opts
}

// LoadOptions reads a YAML options file. Fields that the file leaves
// out keep their default values.
func LoadOptions(filename string) (Options, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, &NotFoundError{Resource: "options file", ID: filename, Err: err}
		}
		return Options{}, err
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("invalid options file %v: %w", filename, err)
	}
	return opts.withDefaults(), nil
}
