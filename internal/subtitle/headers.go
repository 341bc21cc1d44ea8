package subtitle

// SetHeader sets or replaces a [Script Info] header, appending it when
// absent. Matching is exact on the key.
func (d *Document) SetHeader(key, value string) {
	for i := range d.Info {
		if d.Info[i].Raw == "" && d.Info[i].Key == key {
			d.Info[i].Value = value
			return
		}
	}
	d.Info = append(d.Info, InfoLine{Key: key, Value: value})
}

// Header returns a [Script Info] header value.
func (d *Document) Header(key string) (string, bool) {
	for _, info := range d.Info {
		if info.Raw == "" && info.Key == key {
			return info.Value, true
		}
	}
	return "", false
}
