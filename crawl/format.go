package crawl

// ShortURL shortens url for progress output to at most width bytes. The
// tail is kept since the recipe slug sits at the end of the path.
func ShortURL(url string, width int) string {
	switch {
	case width <= 0:
		return ""
	case len(url) <= width:
		return url
	case width < 4:
		return url[:width]
	}
	return "..." + url[len(url)-width+3:]
}
