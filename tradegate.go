package depot

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Benchmark index series can be fetched live instead of loaded from a file.
// Two sources serve that: ls-tc.de for daily history series, tradegate.de
// for a latest quote. Both are keyed by ISIN; index trackers stand in for
// the index itself.

/*
	{
	    "series": {
	        "history": {
	            "data": [
	                [ 1732147200000, 2699.35 ],
	                ...
	            ]
	        }
	    }
	}
*/

// FetchIndexHistory downloads the daily closing series for an instrument
// and returns it as a date-keyed price history, usable directly as a
// benchmark input.
func FetchIndexHistory(instrumentID string) (*History[float64], error) {
	addr := "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=" + instrumentID + "&series=history&type=mini"
	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", instrumentID, err)
	}

	path := "$.series.history.data[*]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %q %w", instrumentID, path, err)
	}
	jrows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: %q is not a list", instrumentID, path)
	}

	prices := &History[float64]{}
	for _, jrow := range jrows {
		// each row is a [epoch-millis, close] pair
		pair, ok := jrow.([]any)
		if !ok || len(pair) < 2 {
			return nil, fmt.Errorf("error parsing %q: row %v is not a pair", instrumentID, jrow)
		}
		ms, ok1 := pair[0].(float64)
		price, ok2 := pair[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("error parsing %q: row %v is not numeric", instrumentID, jrow)
		}
		t := time.UnixMilli(int64(ms)).UTC()
		prices.Append(NewDate(t.Year(), t.Month(), t.Day()), price)
	}
	if prices.Len() == 0 {
		return nil, fmt.Errorf("no history returned for %q", instrumentID)
	}
	return prices, nil
}

// FetchIndexLatest returns the most recent traded value of an instrument
// from the tradegate feed. The feed is quirky: "last" can be absent, a
// string, or 0, so it falls back to the bid.
func FetchIndexLatest(name, isin string) (float64, error) {
	addr := "https://www.tradegate.de/refresh.php?isin=" + isin

	var jobj map[string]any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", name, err)
	}
	// last is the last transaction, moves slower than the bid, but the bid can be 0.
	jval := jobj["last"]
	if s, ok := jval.(string); ok && s == "./." {
		log.Println("'last' is empty, falling back to 'bid'")
		jval = jobj["bid"]
	}
	val, ok := jval.(float64)
	if !ok {
		// sometimes this API returns the value as a string
		sval, ok := jval.(string)
		if !ok {
			return math.NaN(), fmt.Errorf("cannot read value from %q: neither a float nor a string", name)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		var err error
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("cannot read value from %q: invalid string %q: %w", name, sval, err)
		}
	}
	if val == 0 {
		return math.NaN(), fmt.Errorf("empty bid for %s no value to return: bidsize=%v", name, jobj["bidsize"])
	}
	return val, nil
}
