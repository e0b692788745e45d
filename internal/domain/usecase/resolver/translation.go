package resolver

// cityTranslations maps well-known Chinese city names to the English spelling
// the provider's geocoder understands. Never mutated after package init.
var cityTranslations = map[string]string{
	"北京": "Beijing",
	"上海": "Shanghai",
	"广州": "Guangzhou",
	"深圳": "Shenzhen",
	"成都": "Chengdu",
	"杭州": "Hangzhou",
	"武汉": "Wuhan",
	"西安": "Xi'an",
	"南京": "Nanjing",
	"重庆": "Chongqing",
}

// Translate returns the English name for an exact table match.
func Translate(city string) (string, bool) {
	english, ok := cityTranslations[city]
	return english, ok
}
