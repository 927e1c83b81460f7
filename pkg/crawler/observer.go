package crawler

import "cafecrawler/pkg/models"

type nopObserver struct{}

func (nopObserver) StageChanged(State, State)        {}
func (nopObserver) PageFetched(int, int)             {}
func (nopObserver) PostCollected(*models.PostRecord) {}
func (nopObserver) EntrySkipped(string, error)       {}

// Observers fans events out to several observers in order
type Observers []Observer

func (o Observers) StageChanged(from, to State) {
	for _, obs := range o {
		obs.StageChanged(from, to)
	}
}

func (o Observers) PageFetched(page, entries int) {
	for _, obs := range o {
		obs.PageFetched(page, entries)
	}
}

func (o Observers) PostCollected(post *models.PostRecord) {
	for _, obs := range o {
		obs.PostCollected(post)
	}
}

func (o Observers) EntrySkipped(url string, err error) {
	for _, obs := range o {
		obs.EntrySkipped(url, err)
	}
}

func orNopObserver(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
