package pptx

// BlankTemplate returns the generic Office layout set with default colors
// and fonts. It is used when a themed template cannot be loaded; layout
// indices match the default PowerPoint template:
//
//	0 Title Slide        ctrTitle 0, subTitle 1
//	1 Title and Content  title 0, body 1
//	2 Section Header     title 0, body 1
//	3 Two Content        title 0, body 1, body 2
//	4 Title Only         title 0
//	5 Blank
//	6 Picture with Caption title 0, pic 1, body 2
func BlankTemplate() *Template {
	return &Template{
		Name:      "blank",
		SlideSize: SlideSize{Width: DefaultSlideWidth, Height: DefaultSlideHeight},
		Palette: Palette{
			Background: White,
			Title:      Black,
			Text:       Black,
			Accent:     "4472C4",
			AccentText: White,
			Band:       "E9EBF5",
		},
		Fonts: Fonts{Latin: "Calibri"},
		Layouts: []LayoutSpec{
			{
				Name: "Title Slide",
				Placeholders: []PlaceholderSpec{
					{Idx: 0, Type: PlaceholderCenterTitle, Name: "Title 1", Rect: Rect{X: 1524000, Y: 1122363, W: 9144000, H: 2387600}, FontSize: 44},
					{Idx: 1, Type: PlaceholderSubtitle, Name: "Subtitle 2", Rect: Rect{X: 1524000, Y: 3602038, W: 9144000, H: 1655762}, FontSize: 24},
				},
			},
			{
				Name: "Title and Content",
				Placeholders: []PlaceholderSpec{
					{Idx: 0, Type: PlaceholderTitle, Name: "Title 1", Rect: Rect{X: 838200, Y: 365125, W: 10515600, H: 1325563}},
					{Idx: 1, Type: PlaceholderBody, Name: "Content Placeholder 2", Rect: Rect{X: 838200, Y: 1825625, W: 10515600, H: 4351338}},
				},
			},
			{
				Name: "Section Header",
				Placeholders: []PlaceholderSpec{
					{Idx: 0, Type: PlaceholderTitle, Name: "Title 1", Rect: Rect{X: 831850, Y: 1709738, W: 10515600, H: 2852737}, FontSize: 60},
					{Idx: 1, Type: PlaceholderBody, Name: "Text Placeholder 2", Rect: Rect{X: 831850, Y: 4589463, W: 10515600, H: 1500187}},
				},
			},
			{
				Name: "Two Content",
				Placeholders: []PlaceholderSpec{
					{Idx: 0, Type: PlaceholderTitle, Name: "Title 1", Rect: Rect{X: 838200, Y: 365125, W: 10515600, H: 1325563}},
					{Idx: 1, Type: PlaceholderBody, Name: "Content Placeholder 2", Rect: Rect{X: 838200, Y: 1825625, W: 5181600, H: 4351338}},
					{Idx: 2, Type: PlaceholderBody, Name: "Content Placeholder 3", Rect: Rect{X: 6172200, Y: 1825625, W: 5181600, H: 4351338}},
				},
			},
			{
				Name: "Title Only",
				Placeholders: []PlaceholderSpec{
					{Idx: 0, Type: PlaceholderTitle, Name: "Title 1", Rect: Rect{X: 838200, Y: 365125, W: 10515600, H: 1325563}},
				},
			},
			{
				Name: "Blank",
			},
			{
				Name: "Picture with Caption",
				Placeholders: []PlaceholderSpec{
					{Idx: 0, Type: PlaceholderTitle, Name: "Title 1", Rect: Rect{X: 839788, Y: 457200, W: 3932237, H: 1600200}, FontSize: 32},
					{Idx: 1, Type: PlaceholderPicture, Name: "Picture Placeholder 2", Rect: Rect{X: 5183188, Y: 987425, W: 6172200, H: 4873625}},
					{Idx: 2, Type: PlaceholderBody, Name: "Text Placeholder 3", Rect: Rect{X: 839788, Y: 2057400, W: 3932237, H: 3811588}, FontSize: 16},
				},
			},
		},
	}
}
