package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tzbuild/tzcat/internal/compile"
)

// RegionRule is one region's assignment to a distinct rule blob within one
// version: indices into the Catalog's Regions and Blobs tables.
type RegionRule struct {
	RegionIndex uint16
	RulesIndex  uint16
}

// Catalog is the fully assembled, ready-to-encode tzdb catalog: the union
// of region ids and distinct rule blobs across every compiled version, plus
// each version's region-to-blob assignment.
type Catalog struct {
	Versions    []string
	Regions     []string // sorted ascending
	Blobs       []compile.ZoneRules
	Assignments [][]RegionRule // one slice per version, parallel to Versions
}

// Write emits the catalog stream per §4.F.
func (c Catalog) Write(w io.Writer) error {
	if len(c.Assignments) != len(c.Versions) {
		return fmt.Errorf("catalog: %d version assignments, want %d (one per version)", len(c.Assignments), len(c.Versions))
	}
	if len(c.Regions) > 1<<16-1 || len(c.Blobs) > 1<<16-1 || len(c.Versions) > 1<<16-1 {
		return fmt.Errorf("catalog: table too large to index with u16")
	}

	if err := binary.Write(w, order, uint8(formatVersion)); err != nil {
		return err
	}
	if err := writeUTF(w, magic); err != nil {
		return err
	}

	if err := binary.Write(w, order, uint16(len(c.Versions))); err != nil {
		return err
	}
	for _, v := range c.Versions {
		if err := writeUTF(w, v); err != nil {
			return err
		}
	}

	if err := binary.Write(w, order, uint16(len(c.Regions))); err != nil {
		return err
	}
	for _, r := range c.Regions {
		if err := writeUTF(w, r); err != nil {
			return err
		}
	}

	if err := binary.Write(w, order, uint16(len(c.Blobs))); err != nil {
		return err
	}
	for _, zr := range c.Blobs {
		var buf bytes.Buffer
		if err := WriteRuleBlob(&buf, zr); err != nil {
			return err
		}
		if buf.Len() > 1<<16-1 {
			return fmt.Errorf("catalog: rule blob of %d bytes exceeds u16 length prefix", buf.Len())
		}
		if err := binary.Write(w, order, uint16(buf.Len())); err != nil {
			return err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}

	for i := range c.Versions {
		pairs := c.Assignments[i]
		if len(pairs) > 1<<16-1 {
			return fmt.Errorf("catalog: version %q has %d regions, exceeds u16", c.Versions[i], len(pairs))
		}
		if err := binary.Write(w, order, uint16(len(pairs))); err != nil {
			return err
		}
		for _, p := range pairs {
			if err := binary.Write(w, order, p.RegionIndex); err != nil {
				return err
			}
			if err := binary.Write(w, order, p.RulesIndex); err != nil {
				return err
			}
		}
	}
	return nil
}

// Read decodes a catalog stream written by Write.
func Read(r io.Reader) (Catalog, error) {
	var c Catalog

	var fv uint8
	if err := binary.Read(r, order, &fv); err != nil {
		return c, fmt.Errorf("catalog: read format version: %w", err)
	}
	if fv != formatVersion {
		return c, fmt.Errorf("catalog: unsupported format version %d", fv)
	}

	got, err := readUTF(r)
	if err != nil {
		return c, fmt.Errorf("catalog: read magic: %w", err)
	}
	if got != magic {
		return c, fmt.Errorf("catalog: bad magic %q", got)
	}

	var numVersions uint16
	if err := binary.Read(r, order, &numVersions); err != nil {
		return c, fmt.Errorf("catalog: read version count: %w", err)
	}
	c.Versions = make([]string, numVersions)
	for i := range c.Versions {
		if c.Versions[i], err = readUTF(r); err != nil {
			return c, err
		}
	}

	var numRegions uint16
	if err := binary.Read(r, order, &numRegions); err != nil {
		return c, fmt.Errorf("catalog: read region count: %w", err)
	}
	c.Regions = make([]string, numRegions)
	for i := range c.Regions {
		if c.Regions[i], err = readUTF(r); err != nil {
			return c, err
		}
	}

	var numBlobs uint16
	if err := binary.Read(r, order, &numBlobs); err != nil {
		return c, fmt.Errorf("catalog: read blob count: %w", err)
	}
	c.Blobs = make([]compile.ZoneRules, numBlobs)
	for i := range c.Blobs {
		var blobLen uint16
		if err := binary.Read(r, order, &blobLen); err != nil {
			return c, fmt.Errorf("catalog: read blob length: %w", err)
		}
		buf := make([]byte, blobLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return c, fmt.Errorf("catalog: read blob bytes: %w", err)
		}
		zr, err := ReadRuleBlob(bytes.NewReader(buf))
		if err != nil {
			return c, fmt.Errorf("catalog: decode blob %d: %w", i, err)
		}
		c.Blobs[i] = zr
	}

	c.Assignments = make([][]RegionRule, numVersions)
	for i := range c.Assignments {
		var numPairs uint16
		if err := binary.Read(r, order, &numPairs); err != nil {
			return c, fmt.Errorf("catalog: read region count for version %d: %w", i, err)
		}
		pairs := make([]RegionRule, numPairs)
		for j := range pairs {
			if err := binary.Read(r, order, &pairs[j].RegionIndex); err != nil {
				return c, fmt.Errorf("catalog: read region index: %w", err)
			}
			if err := binary.Read(r, order, &pairs[j].RulesIndex); err != nil {
				return c, fmt.Errorf("catalog: read rules index: %w", err)
			}
		}
		c.Assignments[i] = pairs
	}
	return c, nil
}
