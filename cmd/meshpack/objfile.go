package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// objVertex is one deduplicated vertex: a position and a texture coordinate.
type objVertex struct {
	pos [3]float32
	uv  [2]float32
}

// objMesh is the intermediate form between Wavefront OBJ text and the packed
// container: deduplicated vertices plus a flat triangle list.
type objMesh struct {
	vertices []objVertex
	indices  []uint32
	groups   []objGroup
}

// objGroup is a contiguous run of triangles sharing one material name.
type objGroup struct {
	material   string
	indexStart uint32
	indexCount uint32
}

// parseOBJ reads the v/vt/f/usemtl subset of Wavefront OBJ. Faces with more
// than three corners are fan-triangulated; normals and other statements are
// ignored. Corners referencing the same position/texcoord pair are merged
// into one vertex.
func parseOBJ(r io.Reader) (*objMesh, error) {
	var positions [][3]float32
	var texcoords [][2]float32

	mesh := &objMesh{}
	seen := make(map[[2]int]uint32)
	material := ""
	groupStart := uint32(0)

	flushGroup := func() {
		count := uint32(len(mesh.indices)) - groupStart
		if count > 0 {
			mesh.groups = append(mesh.groups, objGroup{
				material:   material,
				indexStart: groupStart,
				indexCount: count,
			})
		}
		groupStart = uint32(len(mesh.indices))
	}

	// resolve maps one OBJ face corner (position and optional texcoord
	// reference, 1-based or negative-relative) to a deduplicated vertex index.
	resolve := func(corner string) (uint32, error) {
		fields := strings.Split(corner, "/")

		pi, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, fmt.Errorf("bad position reference %q: %w", corner, err)
		}
		if pi < 0 {
			pi += len(positions) + 1
		}
		if pi < 1 || pi > len(positions) {
			return 0, fmt.Errorf("position reference %d out of range", pi)
		}

		ti := 0
		if len(fields) > 1 && fields[1] != "" {
			ti, err = strconv.Atoi(fields[1])
			if err != nil {
				return 0, fmt.Errorf("bad texcoord reference %q: %w", corner, err)
			}
			if ti < 0 {
				ti += len(texcoords) + 1
			}
			if ti < 1 || ti > len(texcoords) {
				return 0, fmt.Errorf("texcoord reference %d out of range", ti)
			}
		}

		key := [2]int{pi, ti}
		if idx, ok := seen[key]; ok {
			return idx, nil
		}

		v := objVertex{pos: positions[pi-1]}
		if ti > 0 {
			v.uv = texcoords[ti-1]
		}

		idx := uint32(len(mesh.vertices))
		mesh.vertices = append(mesh.vertices, v)
		seen[key] = idx

		return idx, nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: v needs 3 components", lineNo)
			}
			var p [3]float32
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				p[i] = float32(f)
			}
			positions = append(positions, p)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: vt needs 2 components", lineNo)
			}
			var uv [2]float32
			for i := 0; i < 2; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				uv[i] = float32(f)
			}
			texcoords = append(texcoords, uv)

		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNo)
			}

			first, err := resolve(corners[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			prev, err := resolve(corners[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			for _, corner := range corners[2:] {
				cur, err := resolve(corner)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				mesh.indices = append(mesh.indices, first, prev, cur)
				prev = cur
			}

		case "usemtl":
			flushGroup()
			if len(fields) > 1 {
				material = fields[1]
			} else {
				material = ""
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	flushGroup()

	return mesh, nil
}

// writeOBJ emits the mesh back as Wavefront OBJ text.
func writeOBJ(w io.Writer, mesh *objMesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range mesh.vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.pos[0], v.pos[1], v.pos[2])
	}
	for _, v := range mesh.vertices {
		fmt.Fprintf(bw, "vt %g %g\n", v.uv[0], v.uv[1])
	}

	writeRange := func(start, count uint32) {
		for i := start; i+2 < start+count; i += 3 {
			a := mesh.indices[i] + 1
			b := mesh.indices[i+1] + 1
			c := mesh.indices[i+2] + 1
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		}
	}

	if len(mesh.groups) == 0 {
		writeRange(0, uint32(len(mesh.indices)))
	}
	for _, g := range mesh.groups {
		if g.material != "" {
			fmt.Fprintf(bw, "usemtl %s\n", g.material)
		}
		writeRange(g.indexStart, g.indexCount)
	}

	return bw.Flush()
}
