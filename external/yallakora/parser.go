package yallakora

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-center/internal/domain/match"
)

const (
	selectorSection  = "div.matchCard"
	selectorTitle    = "h2"
	selectorCard     = "div.item"
	selectorTeamA    = "div.teamA"
	selectorTeamB    = "div.teamB"
	selectorResult   = "div.MResult"
	selectorScore    = "span.score"
	selectorTime     = "span.time"
	selectorChannel  = "div.channel"
	selectorDateText = "div.date"
)

// ParseDocument extracts one record per match card, in section order then card order.
// Missing optional regions degrade to match.NotAvailable.
func ParseDocument(r io.Reader) ([]match.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, crerr.Wrap(err, "parse match center document")
	}

	return parseSelection(doc.Selection), nil
}

func parseSelection(root *goquery.Selection) []match.RawRecord {
	records := make([]match.RawRecord, 0, 32)
	root.Find(selectorSection).Each(func(_ int, section *goquery.Selection) {
		title := strings.TrimSpace(section.Find(selectorTitle).First().Text())

		section.Find(selectorCard).Each(func(_ int, card *goquery.Selection) {
			records = append(records, parseCard(title, card))
		})
	})

	return records
}

func parseCard(championship string, card *goquery.Selection) match.RawRecord {
	teamA := card.Find(selectorTeamA).First()
	teamB := card.Find(selectorTeamB).First()
	result := card.Find(selectorResult).First()

	return match.RawRecord{
		match.KeyChampionship: championship,
		match.KeyCompetition:  textOrNA(card.Find(selectorDateText)),
		match.KeyTeamA:        strings.TrimSpace(teamA.Text()),
		match.KeyTeamALogo:    logoOrNA(teamA),
		match.KeyTeamB:        strings.TrimSpace(teamB.Text()),
		match.KeyTeamBLogo:    logoOrNA(teamB),
		match.KeyScore:        scoreOrNA(result),
		match.KeyMatchTime:    textOrNA(result.Find(selectorTime)),
		match.KeyChannel:      textOrNA(card.Find(selectorChannel)),
	}
}

func textOrNA(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return match.NotAvailable
	}
	return strings.TrimSpace(sel.First().Text())
}

func logoOrNA(team *goquery.Selection) string {
	src, ok := team.Find("img").First().Attr("src")
	if !ok {
		return match.NotAvailable
	}
	return src
}

func scoreOrNA(result *goquery.Selection) string {
	labels := result.Find(selectorScore)
	if labels.Length() != 2 {
		return match.NotAvailable
	}
	return strings.TrimSpace(labels.Eq(0).Text()) + " - " + strings.TrimSpace(labels.Eq(1).Text())
}
