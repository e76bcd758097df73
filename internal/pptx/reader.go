package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// Zip limits for template packages.
const (
	maxTemplateEntries  = 10000
	maxTemplatePartSize = 50 << 20
)

var zipMagic = []byte("PK\x03\x04")

// isPackage reports whether data looks like a zip package rather than YAML.
func isPackage(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// packagePart is a template part kept byte-for-byte.
type packagePart struct {
	name        string // zip path without leading slash
	data        []byte
	contentType string // override content type; empty uses the extension default
}

// templatePackage holds the master, layout and theme parts of a .pptx
// template together with everything they reference.
type templatePackage struct {
	masterID    int64
	masterPart  string
	themePart   string
	layoutParts []string // aligned with Template.Layouts
	parts       []packagePart
	defaults    map[string]string // extension -> content type for kept parts
}

func (p *templatePackage) has(name string) bool {
	for _, part := range p.parts {
		if part.name == name {
			return true
		}
	}
	return false
}

type xmlRel struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRels struct {
	Relationships []xmlRel `xml:"Relationship"`
}

// xmlIDEntry reads sldMasterId and sldLayoutId elements, where the plain
// id attribute and r:id share a local name.
type xmlIDEntry struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (e xmlIDEntry) ids() (int64, string) {
	var id int64
	var rid string
	for _, a := range e.Attrs {
		if a.Name.Local != "id" {
			continue
		}
		if a.Name.Space == nsOfficeDocRels {
			rid = a.Value
			continue
		}
		id, _ = strconv.ParseInt(a.Value, 10, 64)
	}
	return id, rid
}

type xmlPresentation struct {
	Masters   []xmlIDEntry `xml:"sldMasterIdLst>sldMasterId"`
	SlideSize struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

type xmlPh struct {
	Type string `xml:"type,attr"`
	Idx  string `xml:"idx,attr"`
}

type xmlXfrm struct {
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

type xmlShape struct {
	NvSpPr struct {
		CNvPr struct {
			Name string `xml:"name,attr"`
		} `xml:"cNvPr"`
		Ph *xmlPh `xml:"nvPr>ph"`
	} `xml:"nvSpPr"`
	Xfrm   *xmlXfrm `xml:"spPr>xfrm"`
	DefRPr *struct {
		Sz int `xml:"sz,attr"`
	} `xml:"txBody>lstStyle>lvl1pPr>defRPr"`
}

type xmlSlideTree struct {
	Name   string     `xml:"name,attr"`
	Shapes []xmlShape `xml:"spTree>sp"`
}

type xmlLayout struct {
	CSld xmlSlideTree `xml:"cSld"`
}

type xmlMaster struct {
	CSld    xmlSlideTree `xml:"cSld"`
	Layouts []xmlIDEntry `xml:"sldLayoutIdLst>sldLayoutId"`
}

type xmlThemeColor struct {
	SRGB *struct {
		Val string `xml:"val,attr"`
	} `xml:"srgbClr"`
	Sys *struct {
		LastClr string `xml:"lastClr,attr"`
	} `xml:"sysClr"`
}

func (c xmlThemeColor) color() Color {
	var raw string
	switch {
	case c.SRGB != nil:
		raw = c.SRGB.Val
	case c.Sys != nil:
		raw = c.Sys.LastClr
	}
	parsed, err := ParseColor(raw)
	if err != nil {
		return ""
	}
	return parsed
}

type xmlTypeface struct {
	Typeface string `xml:"typeface,attr"`
}

type xmlTheme struct {
	Name   string `xml:"name,attr"`
	Scheme struct {
		Dk1     xmlThemeColor `xml:"dk1"`
		Lt1     xmlThemeColor `xml:"lt1"`
		Dk2     xmlThemeColor `xml:"dk2"`
		Lt2     xmlThemeColor `xml:"lt2"`
		Accent1 xmlThemeColor `xml:"accent1"`
	} `xml:"themeElements>clrScheme"`
	Minor struct {
		Latin xmlTypeface `xml:"latin"`
		EA    xmlTypeface `xml:"ea"`
	} `xml:"themeElements>fontScheme>minorFont"`
}

type xmlContentTypes struct {
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// packageReader resolves parts of an opened template package.
type packageReader struct {
	files     map[string]*zip.File
	overrides map[string]string
	defaults  map[string]string
	pkg       *templatePackage
}

// ReadTemplate parses a .pptx (or .potx) package into a Template.
// The first slide master, its layouts and its theme are kept as-is and
// re-emitted by Write; slides of the package are dropped. Layout order
// follows the master's layout list, so layout indices match what
// PowerPoint shows in the layout gallery.
func ReadTemplate(data []byte) (*Template, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening package: %v", ErrInvalidTemplate, err)
	}
	if len(zr.File) > maxTemplateEntries {
		return nil, fmt.Errorf("%w: package has too many entries (%d > %d)", ErrInvalidTemplate, len(zr.File), maxTemplateEntries)
	}

	r := &packageReader{
		files:     make(map[string]*zip.File, len(zr.File)),
		overrides: make(map[string]string),
		defaults:  make(map[string]string),
		pkg:       &templatePackage{defaults: make(map[string]string)},
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	tpl, err := r.read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	tpl.applyDefaults()
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (r *packageReader) read() (*Template, error) {
	if err := r.readContentTypes(); err != nil {
		return nil, err
	}

	var pres xmlPresentation
	if err := r.unmarshal("ppt/presentation.xml", &pres); err != nil {
		return nil, err
	}
	if len(pres.Masters) == 0 {
		return nil, fmt.Errorf("no slide master")
	}
	masterID, masterRID := pres.Masters[0].ids()
	presRels, err := r.rels("ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	masterPart, ok := resolveRel(presRels, "ppt/presentation.xml", masterRID)
	if !ok {
		return nil, fmt.Errorf("slide master relationship %q not found", masterRID)
	}
	r.pkg.masterID = masterID
	r.pkg.masterPart = masterPart

	var master xmlMaster
	if err := r.unmarshal(masterPart, &master); err != nil {
		return nil, err
	}
	masterRels, err := r.keep(masterPart)
	if err != nil {
		return nil, err
	}

	tpl := &Template{
		SlideSize: SlideSize{Width: pres.SlideSize.CX, Height: pres.SlideSize.CY},
		pkg:       r.pkg,
	}

	for _, rel := range masterRels {
		if rel.Type == relTypeTheme {
			r.pkg.themePart = resolveTarget(masterPart, rel.Target)
		}
	}
	if r.pkg.themePart == "" {
		return nil, fmt.Errorf("slide master has no theme")
	}
	if err := r.readTheme(tpl); err != nil {
		return nil, err
	}

	inherited := masterGeometry(master.CSld.Shapes)
	for _, entry := range master.Layouts {
		_, rid := entry.ids()
		layoutPart, ok := resolveRel(masterRels, masterPart, rid)
		if !ok {
			return nil, fmt.Errorf("slide layout relationship %q not found", rid)
		}
		var layout xmlLayout
		if err := r.unmarshal(layoutPart, &layout); err != nil {
			return nil, err
		}
		if _, err := r.keep(layoutPart); err != nil {
			return nil, err
		}
		r.pkg.layoutParts = append(r.pkg.layoutParts, layoutPart)
		tpl.Layouts = append(tpl.Layouts, layoutSpec(layout, inherited))
	}
	if len(tpl.Layouts) == 0 {
		return nil, fmt.Errorf("slide master has no layouts")
	}
	if tpl.Name == "" {
		tpl.Name = strings.TrimSuffix(path.Base(masterPart), ".xml")
	}
	return tpl, nil
}

func (r *packageReader) readTheme(tpl *Template) error {
	var theme xmlTheme
	if err := r.unmarshal(r.pkg.themePart, &theme); err != nil {
		return err
	}
	if _, err := r.keep(r.pkg.themePart); err != nil {
		return err
	}

	tpl.Name = theme.Name
	tpl.Palette = Palette{
		Background: theme.Scheme.Lt1.color(),
		Title:      theme.Scheme.Dk2.color(),
		Text:       theme.Scheme.Dk1.color(),
		Accent:     theme.Scheme.Accent1.color(),
		AccentText: theme.Scheme.Lt1.color(),
		Band:       theme.Scheme.Lt2.color(),
	}
	tpl.Fonts = Fonts{Latin: theme.Minor.Latin.Typeface, EastAsian: theme.Minor.EA.Typeface}
	return nil
}

func (r *packageReader) readContentTypes() error {
	var ct xmlContentTypes
	if err := r.unmarshal("[Content_Types].xml", &ct); err != nil {
		return err
	}
	for _, d := range ct.Defaults {
		r.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range ct.Overrides {
		r.overrides[strings.TrimPrefix(o.PartName, "/")] = o.ContentType
	}
	return nil
}

// keep records part, its relationships part and every internal part it
// references, and returns the part's relationships. Layout, master and
// theme targets are followed by the caller.
func (r *packageReader) keep(part string) ([]xmlRel, error) {
	if r.pkg.has(part) {
		return r.rels(part)
	}
	if err := r.keepPart(part); err != nil {
		return nil, err
	}

	relsPart := relsPath(part)
	if _, ok := r.files[relsPart]; !ok {
		return nil, nil
	}
	if err := r.keepPart(relsPart); err != nil {
		return nil, err
	}
	rels, err := r.rels(part)
	if err != nil {
		return nil, err
	}
	for _, rel := range rels {
		if rel.TargetMode == "External" {
			continue
		}
		switch rel.Type {
		case relTypeSlideLayout, relTypeSlideMaster, relTypeTheme:
			continue
		}
		target := resolveTarget(part, rel.Target)
		if _, ok := r.files[target]; !ok || r.pkg.has(target) {
			continue
		}
		if _, err := r.keep(target); err != nil {
			return nil, err
		}
	}
	return rels, nil
}

func (r *packageReader) keepPart(name string) error {
	data, err := r.file(name)
	if err != nil {
		return err
	}
	ct := r.overrides[name]
	if ct == "" {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		if def, ok := r.defaults[ext]; ok && ext != "xml" && ext != "rels" {
			r.pkg.defaults[ext] = def
		}
	}
	r.pkg.parts = append(r.pkg.parts, packagePart{name: name, data: data, contentType: ct})
	return nil
}

func (r *packageReader) rels(part string) ([]xmlRel, error) {
	relsPart := relsPath(part)
	if _, ok := r.files[relsPart]; !ok {
		return nil, nil
	}
	var rels xmlRels
	if err := r.unmarshal(relsPart, &rels); err != nil {
		return nil, err
	}
	return rels.Relationships, nil
}

func (r *packageReader) unmarshal(name string, v any) error {
	data, err := r.file(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func (r *packageReader) file(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	if f.UncompressedSize64 > maxTemplatePartSize {
		return nil, fmt.Errorf("part %s exceeds %d bytes", name, maxTemplatePartSize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxTemplatePartSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) > maxTemplatePartSize {
		return nil, fmt.Errorf("part %s exceeds %d bytes", name, maxTemplatePartSize)
	}
	return data, nil
}

// layoutSpec converts a parsed layout. Placeholders without their own
// geometry take the master's title or body geometry; placeholder types the
// renderer cannot fill (date, footer, slide number) are skipped.
func layoutSpec(layout xmlLayout, inherited map[PlaceholderType]Rect) LayoutSpec {
	spec := LayoutSpec{Name: layout.CSld.Name}
	seen := make(map[int]bool)
	for _, sp := range layout.CSld.Shapes {
		ph := sp.NvSpPr.Ph
		if ph == nil {
			continue
		}
		typ, ok := placeholderType(ph.Type)
		if !ok {
			continue
		}
		idx, _ := strconv.Atoi(ph.Idx)
		if seen[idx] {
			continue
		}
		seen[idx] = true

		out := PlaceholderSpec{Idx: idx, Type: typ, Name: sp.NvSpPr.CNvPr.Name}
		if sp.Xfrm != nil {
			out.Rect = sp.Xfrm.rect()
		} else {
			out.Rect = inherited[inheritKey(typ)]
		}
		if sp.DefRPr != nil && sp.DefRPr.Sz > 0 {
			out.FontSize = float64(sp.DefRPr.Sz) / 100
		}
		spec.Placeholders = append(spec.Placeholders, out)
	}
	return spec
}

// masterGeometry collects the master's title and body frames.
func masterGeometry(shapes []xmlShape) map[PlaceholderType]Rect {
	geo := make(map[PlaceholderType]Rect, 2)
	for _, sp := range shapes {
		if sp.NvSpPr.Ph == nil || sp.Xfrm == nil {
			continue
		}
		typ, ok := placeholderType(sp.NvSpPr.Ph.Type)
		if !ok {
			continue
		}
		key := inheritKey(typ)
		if _, done := geo[key]; !done {
			geo[key] = sp.Xfrm.rect()
		}
	}
	return geo
}

func inheritKey(t PlaceholderType) PlaceholderType {
	if t.IsTitle() {
		return PlaceholderTitle
	}
	return PlaceholderBody
}

// placeholderType maps an OOXML ph type. An absent type means body; obj
// placeholders accept any content and are filled as body text.
func placeholderType(raw string) (PlaceholderType, bool) {
	switch raw {
	case "", "obj":
		return PlaceholderBody, true
	}
	t := PlaceholderType(raw)
	return t, t.valid()
}

func (x *xmlXfrm) rect() Rect {
	return Rect{X: x.Off.X, Y: x.Off.Y, W: x.Ext.CX, H: x.Ext.CY}
}

// resolveRel returns the part targeted by relationship id of part.
func resolveRel(rels []xmlRel, part, id string) (string, bool) {
	for _, rel := range rels {
		if rel.ID == id {
			return resolveTarget(part, rel.Target), true
		}
	}
	return "", false
}

// resolveTarget resolves a relationship target against the source part.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

func relsPath(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// relTarget expresses part as a target relative to the directory dir.
func relTarget(dir, part string) string {
	from := strings.Split(dir, "/")
	to := strings.Split(part, "/")
	if dir == "" {
		from = nil
	}
	common := 0
	for common < len(from) && common < len(to)-1 && from[common] == to[common] {
		common++
	}
	up := strings.Repeat("../", len(from)-common)
	return up + strings.Join(to[common:], "/")
}
