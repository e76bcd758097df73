package pptx

import "fmt"

// Part names of the generated master, layouts and theme.
const (
	generatedMasterPart = "ppt/slideMasters/slideMaster1.xml"
	generatedThemePart  = "ppt/theme/theme1.xml"
)

func (w *packageWriter) masterPart() string {
	if pkg := w.p.tpl.pkg; pkg != nil {
		return pkg.masterPart
	}
	return generatedMasterPart
}

func (w *packageWriter) themePart() string {
	if pkg := w.p.tpl.pkg; pkg != nil {
		return pkg.themePart
	}
	return generatedThemePart
}

func (w *packageWriter) layoutPart(i int) string {
	if pkg := w.p.tpl.pkg; pkg != nil {
		return pkg.layoutParts[i]
	}
	return fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1)
}

func (w *packageWriter) masterID() int64 {
	if pkg := w.p.tpl.pkg; pkg != nil && pkg.masterID > 0 {
		return pkg.masterID
	}
	return masterID
}

// nextName returns the next stemN.ext under dir that no template part uses.
func (w *packageWriter) nextName(dir, stem, ext string, seq *int) string {
	for {
		*seq++
		name := fmt.Sprintf("%s%d.%s", stem, *seq, ext)
		if pkg := w.p.tpl.pkg; pkg == nil || !pkg.has(dir+name) {
			return name
		}
	}
}

// writeTemplateParts copies the parts kept from a .pptx template.
func (w *packageWriter) writeTemplateParts() error {
	pkg := w.p.tpl.pkg
	if pkg == nil {
		return nil
	}
	for _, part := range pkg.parts {
		fw, err := w.zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
	}
	return nil
}
