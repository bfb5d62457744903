package layout

import (
	"fmt"
	"strings"

	"github.com/fabricadebestseller/bookforge/internal/manuscript"
)

const (
	publisherName = "Fábrica de Bestseller"
	publisherCity = "São Paulo"

	rightsStatement = "All rights reserved. No part of this publication may be " +
		"reproduced, stored or transmitted in any form or by any means without " +
		"the prior written permission of the publisher."
)

// Asset is a fetched raster image ready for embedding. A nil *Asset means
// the fetch failed and the layout falls back to a text placeholder.
type Asset struct {
	Data   []byte
	Width  int
	Height int
}

// Assets carries the embeddable images and the imprint year threaded into
// the title and copyright pages.
type Assets struct {
	Logo      *Asset
	LogoThumb *Asset
	QR        *Asset
	Year      int
}

// AssembleBook walks the fixed structural sequence and returns the
// ordered section list for the whole document.
//
// The sequence alternates fixed-content and fixed-blank sections by
// construction rather than computing page counts dynamically: every
// structural page that must land on a given parity is paired with an
// explicit blank leaf where the layout requires one. Page numbering runs
// lower-roman from the half-title and restarts as arabic at the
// introduction.
func AssembleBook(meta manuscript.Metadata, content manuscript.Content, assets Assets) []Section {
	sections := []Section{
		halfTitleSection(meta),
		blankLeaf(),
		titlePageSection(meta, assets),
		copyrightSection(meta, content, assets),
		frontMatterText("Acknowledgments", content.Acknowledgments, "insert acknowledgments here"),
		blankLeaf(),
		dedicationSection(content.Dedication),
		blankLeaf(),
		tocSection(content.Chapters),
	}

	headers := &HeaderSet{Odd: meta.BookTitle, Even: meta.AuthorName}

	intro := bodySection(headers, TitleBlock("Introduction", false), BodyParagraphs(content.Introduction))
	intro.Numbering = &PageNumbering{Format: NumberDecimal, Start: bodyStartPage}
	sections = append(sections, intro)

	for _, ch := range content.Chapters {
		blocks := ChapterHeading(ch.ID, ch.Title)
		body := BodyParagraphs(ch.Content)
		if len(body) == 0 {
			body = []Block{Placeholder("insert chapter text here")}
		}
		sections = append(sections, bodySection(headers, nil, append(blocks, body...)))
	}

	if strings.TrimSpace(content.Conclusion) != "" {
		sections = append(sections, bodySection(headers, TitleBlock("Conclusion", false), BodyParagraphs(content.Conclusion)))
	}

	about := BodyParagraphs(content.AboutAuthor)
	if len(about) == 0 {
		about = []Block{Placeholder("insert author bio here")}
	}
	sections = append(sections, bodySection(headers, TitleBlock("About the Author", false), about))

	return sections
}

// halfTitleSection is the first printed page: title and subtitle only,
// pushed down from the top. Roman numbering starts here.
func halfTitleSection(meta manuscript.Metadata) Section {
	return Section{
		Blocks: []Block{
			CenteredText(meta.BookTitle, HeadingStyle, CmToTwips(6)),
			CenteredText(meta.SubTitle, BodyStyle, CmToTwips(0.5)),
		},
		Break:      BreakNextPage,
		Numbering:  &PageNumbering{Format: NumberLowerRoman, Start: 1},
		PageFooter: true,
	}
}

// blankLeaf is an intentionally empty page, inserted to keep the next
// structural page on its required parity.
func blankLeaf() Section {
	return Section{
		Blocks:     []Block{BlankMarker{}},
		Break:      BreakNextPage,
		Numbering:  &PageNumbering{Format: NumberLowerRoman},
		PageFooter: true,
	}
}

// titlePageSection: author at the top, title and subtitle vertically
// centered, publisher logo (or its text fallback) at the bottom.
func titlePageSection(meta manuscript.Metadata, assets Assets) Section {
	blocks := []Block{
		CenteredText(meta.AuthorName, BodyStyle, CmToTwips(1)),
		CenteredText(meta.BookTitle, HeadingStyle, CmToTwips(7)),
		CenteredText(meta.SubTitle, BodyStyle, CmToTwips(0.5)),
	}
	blocks = append(blocks, logoOrFallback(assets.Logo, CmToTwips(6))...)

	return Section{
		Blocks:     blocks,
		Break:      BreakNextPage,
		Numbering:  &PageNumbering{Format: NumberLowerRoman},
		PageFooter: true,
	}
}

// copyrightSection builds the credits page: a borderless two-column table
// followed by the cataloging placeholder.
func copyrightSection(meta manuscript.Metadata, content manuscript.Content, assets Assets) Section {
	left := []Block{
		Paragraph{Runs: []Run{{Text: meta.BookTitle, Bold: true, Style: BodyStyle}}},
		Paragraph{Runs: []Run{{Text: meta.SubTitle, Style: BodyStyle}}},
		Paragraph{Runs: []Run{{Text: fmt.Sprintf("%s, %d", publisherCity, assets.Year), Style: BodyStyle}}},
		Paragraph{Runs: []Run{{Text: meta.AuthorName, Style: BodyStyle}}},
	}

	category := content.Marketing.Category
	if strings.TrimSpace(category) == "" {
		category = "personal development"
	}
	right := []Block{
		Paragraph{Runs: []Run{{Text: "Category: " + category, Style: BodyStyle}}},
		Paragraph{Runs: []Run{{Text: rightsStatement, Style: BodyStyle}}},
		Paragraph{Runs: []Run{{Text: "Editorial production and cover: " + publisherName, Style: BodyStyle}}},
		Paragraph{Runs: []Run{{Text: "ISBN: [to be assigned]", Style: BodyStyle}}},
	}
	if assets.LogoThumb != nil {
		right = append(right, Image{Data: assets.LogoThumb.Data, Width: assets.LogoThumb.Width, Height: assets.LogoThumb.Height})
	} else {
		right = append(right, Paragraph{Runs: []Run{{Text: publisherName, Bold: true, Style: BodyStyle}}})
	}
	if meta.Contact != nil && meta.Contact.Name != "" {
		right = append(right, Paragraph{Runs: []Run{{Text: "@" + meta.Contact.Name, Style: BodyStyle}}})
		if assets.QR != nil {
			right = append(right, Image{Data: assets.QR.Data, Width: assets.QR.Width, Height: assets.QR.Height})
		} else {
			right = append(right, Paragraph{Runs: []Run{{Text: "[scan code unavailable]", Style: BodyStyle}}})
		}
	}

	return Section{
		Blocks: []Block{
			TwoColumnTable{Left: left, Right: right},
			Paragraph{
				Runs:        []Run{{Text: "[Cataloging-in-Publication data placeholder]", Style: BodyStyle}},
				Align:       AlignCenter,
				SpaceBefore: CmToTwips(2),
			},
		},
		Break:      BreakNextPage,
		Numbering:  &PageNumbering{Format: NumberLowerRoman},
		PageFooter: true,
	}
}

// frontMatterText is a titled front-matter page whose body degrades to a
// bracketed placeholder when the optional text is missing.
func frontMatterText(title, text, placeholder string) Section {
	blocks := []Block{TitleBlock(title, false)}
	body := BodyParagraphs(text)
	if len(body) == 0 {
		body = []Block{Placeholder(placeholder)}
	}
	return Section{
		Blocks:     append(blocks, body...),
		Break:      BreakNextPage,
		Numbering:  &PageNumbering{Format: NumberLowerRoman},
		PageFooter: true,
	}
}

// dedicationSection is a single vertically-centered paragraph.
func dedicationSection(text string) Section {
	para := strings.TrimSpace(manuscript.Sanitize(text))
	var block Block
	if para == "" {
		block = Placeholder("insert dedication here")
	} else {
		block = Paragraph{
			Runs:        styledRuns(manuscript.Tokenize(para), BodyStyle),
			Align:       AlignCenter,
			LineSpacing: BodyLineSpacing,
		}
	}
	return Section{
		Blocks: []Block{
			Paragraph{SpaceBefore: CmToTwips(8)},
			block,
		},
		Break:      BreakNextPage,
		Numbering:  &PageNumbering{Format: NumberLowerRoman},
		PageFooter: true,
	}
}

func tocSection(chapters []manuscript.Chapter) Section {
	blocks := []Block{TitleBlock("Contents", false)}
	blocks = append(blocks, TOCEntries("Introduction", chapters)...)
	return Section{
		Blocks:     blocks,
		Break:      BreakNextPage,
		Numbering:  &PageNumbering{Format: NumberLowerRoman},
		PageFooter: true,
	}
}

// bodySection is a chapter-style section: forced to an odd page, headers
// alternating by parity, no header on its first page.
func bodySection(headers *HeaderSet, title Block, blocks []Block) Section {
	all := blocks
	if title != nil {
		all = append([]Block{title}, blocks...)
	}
	if len(all) == 0 {
		all = []Block{Placeholder("insert text here")}
	}
	return Section{
		Blocks:        all,
		Break:         BreakOddPage,
		Numbering:     &PageNumbering{Format: NumberDecimal},
		Headers:       headers,
		FirstPageBare: true,
		PageFooter:    true,
	}
}

// logoOrFallback pushes the logo (or its text stand-in) toward the bottom
// of the page. Images carry no spacing of their own, so the image path
// emits a spacer paragraph first.
func logoOrFallback(logo *Asset, spaceBefore int) []Block {
	if logo != nil {
		return []Block{
			Paragraph{SpaceBefore: spaceBefore},
			Image{Data: logo.Data, Width: logo.Width, Height: logo.Height},
		}
	}
	return []Block{CenteredText(publisherName, BodyStyle, spaceBefore)}
}
