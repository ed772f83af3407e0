// Command gentemplate writes the minimal Word document used as the base of the docx reference.
package main

import (
	"archive/zip"
	"flag"
	"fmt"
	"os"
)

var parts = []struct {
	name    string
	content string
}{
	{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
	{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
	{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`},
	{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:rPr><w:b/><w:sz w:val="36"/></w:rPr><w:t>CloudStack API Reference</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Endpoint: {{Endpoint}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Date: {{Date}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Total Methods: {{TotalMethods}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Async Methods: {{AsyncMethods}}</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:rFonts w:ascii="Consolas" w:hAnsi="Consolas"/><w:sz w:val="18"/></w:rPr><w:t xml:space="preserve">{{Content}}</w:t></w:r></w:p>
</w:body>
</w:document>`},
}

func main() {
	output := flag.String("o", "template.docx", "Path of the generated template")
	flag.Parse()

	if err := write(*output); err != nil {
		fmt.Fprintf(os.Stderr, "gentemplate: %v\n", err)
		os.Exit(1)
	}
}

func write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, part := range parts {
		pw, err := w.Create(part.name)
		if err != nil {
			return err
		}
		if _, err := pw.Write([]byte(part.content)); err != nil {
			return err
		}
	}
	return w.Close()
}
