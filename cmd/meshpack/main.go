// Command meshpack packs Wavefront OBJ meshes into the compact container
// format and unpacks them back.
//
// Usage:
//
//	meshpack pack [-config meshpack.toml] [-o out.mesh] input.obj
//	meshpack unpack [-o out.obj] input.mesh
//	meshpack info input.mesh
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arloliu/meshcodec/blob"
	"github.com/arloliu/meshcodec/container"
	"github.com/arloliu/meshcodec/endian"
	"github.com/arloliu/meshcodec/format"
	"github.com/arloliu/meshcodec/quant"
	"github.com/arloliu/meshcodec/section"
)

// vertexSize is the packed record layout the CLI uses: three uint16 position
// components followed by two uint16 texture coordinates, little endian.
const vertexSize = 10

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "meshpack",
})

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "pack":
		err = runPack(os.Args[2:])
	case "unpack":
		err = runUnpack(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: meshpack <pack|unpack|info> [flags] input")
}

func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	output := fs.String("o", "", "output file (default input with .mesh extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("pack expects exactly one input file")
	}
	input := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	mesh, err := parseOBJ(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	logger.Info("parsed mesh",
		"vertices", len(mesh.vertices),
		"triangles", len(mesh.indices)/3,
		"groups", len(mesh.groups))

	packed, err := packMesh(mesh, cfg)
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = input + ".mesh"
	}
	if err := os.WriteFile(out, packed, 0o644); err != nil {
		return err
	}

	rawSize := len(mesh.vertices)*20 + len(mesh.indices)*4
	logger.Info("packed",
		"output", out,
		"size", len(packed),
		"raw", rawSize,
		"ratio", fmt.Sprintf("%.2fx", float64(rawSize)/float64(len(packed))))

	return nil
}

// packMesh quantizes the mesh attributes, encodes both blobs, and assembles
// the container followed by the concatenated material names.
func packMesh(mesh *objMesh, cfg Config) ([]byte, error) {
	positions := make([]float32, 0, len(mesh.vertices)*3)
	uvs := make([]float32, 0, len(mesh.vertices)*2)
	for _, v := range mesh.vertices {
		positions = append(positions, v.pos[0], v.pos[1], v.pos[2])
		uvs = append(uvs, v.uv[0], v.uv[1])
	}

	posOffset, posInvScale := quant.CalcPosOffsetAndScaleInverse(positions)
	uvOffset, uvInvScale := quant.CalcUVOffsetAndScaleInverse(uvs)

	engine := endian.GetLittleEndianEngine()
	vertexData := make([]byte, 0, len(mesh.vertices)*vertexSize)
	for _, v := range mesh.vertices {
		for a := 0; a < 3; a++ {
			u := (v.pos[a] - posOffset[a]) * posInvScale
			q := quant.QuantizeUnorm(u, cfg.PositionBits)
			vertexData = engine.AppendUint16(vertexData, uint16(q)) //nolint:gosec
		}
		for a := 0; a < 2; a++ {
			u := (v.uv[a] - uvOffset[a]) * uvInvScale[a]
			q := quant.QuantizeUnorm(u, cfg.UVBits)
			vertexData = engine.AppendUint16(vertexData, uint16(q)) //nolint:gosec
		}
	}

	indexBlob, err := blob.EncodeIndexBuffer(mesh.indices, len(mesh.vertices))
	if err != nil {
		return nil, fmt.Errorf("encode index buffer: %w", err)
	}
	vertexBlob, err := blob.EncodeVertexBuffer(vertexData, vertexSize)
	if err != nil {
		return nil, fmt.Errorf("encode vertex buffer: %w", err)
	}

	// The stored scales fold in the quantization step so unpacking is a
	// single multiply-add per component, independent of the bit widths.
	posStep := float32(int(1)<<cfg.PositionBits - 1)
	uvStep := float32(int(1)<<cfg.UVBits - 1)

	w, err := container.NewWriter(
		container.WithCompression(cfg.compressionType()),
		container.WithChecksum(cfg.Checksum),
	)
	if err != nil {
		return nil, err
	}

	w.SetQuantization(
		posOffset, quant.RcpSafe(posInvScale)/posStep,
		uvOffset, [2]float32{
			quant.RcpSafe(uvInvScale[0]) / uvStep,
			quant.RcpSafe(uvInvScale[1]) / uvStep,
		},
	)
	w.SetVertexBlob(vertexBlob, len(mesh.vertices))
	w.SetIndexBlob(indexBlob, len(mesh.indices))

	for _, g := range mesh.groups {
		w.AddGroup(g.indexStart, g.indexCount, uint32(len(g.material))) //nolint:gosec
	}

	packed, err := w.Finish()
	if err != nil {
		return nil, err
	}

	// Material names follow the container, in group order, with their
	// lengths recorded in the group records.
	for _, g := range mesh.groups {
		packed = append(packed, g.material...)
	}

	return packed, nil
}

func runUnpack(args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ExitOnError)
	output := fs.String("o", "", "output file (default input with .obj extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("unpack expects exactly one input file")
	}
	input := fs.Arg(0)

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	mesh, err := unpackMesh(data)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", input, err)
	}

	out := *output
	if out == "" {
		out = input + ".obj"
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := writeOBJ(f, mesh); err != nil {
		f.Close()
		return err
	}

	logger.Info("unpacked",
		"output", out,
		"vertices", len(mesh.vertices),
		"triangles", len(mesh.indices)/3)

	return f.Close()
}

// containerExtent returns the byte length of the container at the start of
// data, so trailing material names can be separated before parsing.
func containerExtent(data []byte) (int, error) {
	header, err := section.ParseEncodeHeader(data)
	if err != nil {
		return 0, err
	}

	extent := uint64(section.HeaderSize) +
		uint64(header.GroupCount)*section.ObjectSize +
		uint64(header.VertexDataSize) + uint64(header.IndexDataSize)
	if header.Reserved[1]&1 != 0 {
		extent += section.ChecksumSize
	}
	if extent > uint64(len(data)) {
		return 0, fmt.Errorf("container extent %d exceeds file size %d", extent, len(data))
	}

	return int(extent), nil //nolint:gosec
}

func unpackMesh(data []byte) (*objMesh, error) {
	extent, err := containerExtent(data)
	if err != nil {
		return nil, err
	}

	r, err := container.NewReader(data[:extent])
	if err != nil {
		return nil, err
	}

	indices, err := blob.DecodeIndexBuffer[uint32](r.IndexBlob, int(r.Header.IndexCount))
	if err != nil {
		return nil, fmt.Errorf("decode index buffer: %w", err)
	}
	records, err := blob.DecodeVertexBuffer(r.VertexBlob, int(r.Header.VertexCount), vertexSize)
	if err != nil {
		return nil, fmt.Errorf("decode vertex buffer: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	mesh := &objMesh{indices: indices}
	mesh.vertices = make([]objVertex, r.Header.VertexCount)
	for i := range mesh.vertices {
		rec := records[i*vertexSize : (i+1)*vertexSize]
		for a := 0; a < 3; a++ {
			q := engine.Uint16(rec[a*2 : a*2+2])
			mesh.vertices[i].pos[a] = r.Header.PosOffset[a] + float32(q)*r.Header.PosScale
		}
		for a := 0; a < 2; a++ {
			q := engine.Uint16(rec[6+a*2 : 8+a*2])
			mesh.vertices[i].uv[a] = r.Header.UVOffset[a] + float32(q)*r.Header.UVScale[a]
		}
	}

	names := data[extent:]
	for _, o := range r.Objects {
		if uint64(o.IndexOffset)+uint64(o.IndexCount) > uint64(len(indices)) {
			return nil, fmt.Errorf("group range [%d, %d) exceeds index count %d",
				o.IndexOffset, uint64(o.IndexOffset)+uint64(o.IndexCount), len(indices))
		}
		n := int(o.MaterialLength)
		if n > len(names) {
			return nil, fmt.Errorf("material name table truncated")
		}
		mesh.groups = append(mesh.groups, objGroup{
			material:   string(names[:n]),
			indexStart: o.IndexOffset,
			indexCount: o.IndexCount,
		})
		names = names[n:]
	}

	return mesh, nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("info expects exactly one input file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	header, err := section.ParseEncodeHeader(data)
	if err != nil {
		return err
	}

	compression := format.CompressionType(header.Reserved[0] & 0xFF) //nolint:gosec

	fmt.Printf("file size:        %d\n", len(data))
	fmt.Printf("groups:           %d\n", header.GroupCount)
	fmt.Printf("vertices:         %d\n", header.VertexCount)
	fmt.Printf("indices:          %d (%d triangles)\n", header.IndexCount, header.IndexCount/3)
	fmt.Printf("vertex blob:      %d bytes\n", header.VertexDataSize)
	fmt.Printf("index blob:       %d bytes\n", header.IndexDataSize)
	fmt.Printf("compression:      %s\n", compression)
	fmt.Printf("checksum:         %t\n", header.Reserved[1]&1 != 0)
	fmt.Printf("position offset:  (%g, %g, %g)\n", header.PosOffset[0], header.PosOffset[1], header.PosOffset[2])
	fmt.Printf("position scale:   %g\n", header.PosScale)
	fmt.Printf("uv offset:        (%g, %g)\n", header.UVOffset[0], header.UVOffset[1])
	fmt.Printf("uv scale:         (%g, %g)\n", header.UVScale[0], header.UVScale[1])

	return nil
}
