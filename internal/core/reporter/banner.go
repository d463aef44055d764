package reporter

import (
	"reconreport/internal/pkg/version"
)

const bannerArt = `
 ______                            ______
(_____ \                          (_____ \                           _
 _____) )_____  ____ ___  ____     _____) )_____ ____   ___   ____ _| |_
|  __  /| ___ |/ ___) _ \|  _ \   |  __  /| ___ |  _ \ / _ \ / ___|_   _)
| |  \ \| ____( (__| |_| | | | |  | |  \ \| ____| |_| | |_| | |     | |_
|_|   |_|_____)\____)___/|_| |_|  |_|   |_|_____)  __/ \___/|_|      \__)
                                                |_|`

// Banner 无颜色的产品横幅
func Banner() string {
	return bannerArt + "\nRecon Report V" + version.GetVersion() + "\nCoded by David LE MEUR\n"
}
