package indeed

import (
	"net/url"
	"strconv"
)

const (
	defaultVersion = "2"
	defaultFormat  = "json"
)

var supportedFormats = map[string]struct{}{
	defaultFormat: {},
}

// Validate reports the required parameters that are missing
func (q Query) Validate() error {
	var missing []string
	if q.Publisher == "" {
		missing = append(missing, "publisher")
	}
	if len(missing) > 0 {
		return &MissingParameterError{Params: missing}
	}
	return nil
}

// ResponseFormat returns the format sent to the API. Unsupported values fall
// back to json since that is the only body the client decodes.
func (q Query) ResponseFormat() string {
	if _, ok := supportedFormats[q.Format]; ok {
		return q.Format
	}
	return defaultFormat
}

// Values encodes the query as request parameters
func (q Query) Values() url.Values {
	values := url.Values{}

	setString(values, "publisher", q.Publisher)
	version := q.Version
	if version == "" {
		version = defaultVersion
	}
	values.Set("v", version)
	values.Set("format", q.ResponseFormat())

	setString(values, "q", q.Keyword)
	setString(values, "l", q.Location)
	setString(values, "sort", q.Sort)
	setInt(values, "radius", q.Radius)
	setString(values, "st", q.SiteType)
	setString(values, "jt", q.JobType)
	setInt(values, "start", q.Start)
	setInt(values, "limit", q.Limit)
	setInt(values, "fromage", q.DaysBack)

	if q.Highlight != nil {
		values.Set("highlight", boolFlag(*q.Highlight))
	}
	if q.FilterDuplicates {
		values.Set("filter", "1")
	}
	if q.IncludeLatLong {
		values.Set("latlong", "1")
	}

	setString(values, "co", q.Country)
	setString(values, "chnl", q.Channel)
	setString(values, "userip", q.UserIP)
	setString(values, "useragent", q.UserAgent)

	return values
}

func setString(values url.Values, key, v string) {
	if v != "" {
		values.Set(key, v)
	}
}

func setInt(values url.Values, key string, v int) {
	if v != 0 {
		values.Set(key, strconv.Itoa(v))
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
