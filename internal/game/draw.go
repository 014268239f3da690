package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Window geometry in logical pixels.
const (
	windowX      = 50
	windowY      = 130
	windowW      = 700
	windowH      = 464
	titleBarH    = 30
	statusBarH   = 24
	tileW        = 130
	tileH        = 90
	tileGap      = 26
	tilesY       = windowY + 210
	progressW    = 400
	progressH    = 28
	progressY    = windowY + 336
	sandY        = 576
	oceanY       = 596
	fsButtonR    = 28
	fsButtonX    = ScreenWidth - 48
	fsButtonY    = ScreenHeight - 48
	badgeW       = 200
	badgeH       = 64
	badgeX       = ScreenWidth - badgeW - 20
	badgeY       = 20
	stripeWidth  = 10
	shimmerSpeed = 30.0
)

var (
	teal     = hex(0x20b2aa)
	darkTeal = hex(0x008b8b)
	deepTeal = hex(0x006666)
	pink     = hex(0xff6b9d)
	gold     = hex(0xffd700)
	cream    = hex(0xfffef0)
	cream2   = hex(0xfff5e6)
	white    = hex(0xffffff)
	sand     = hex(0xf4e4ba)
	sandDark = hex(0xdeb887)
	palm     = hex(0x2e8b57)
	trunk    = hex(0x8b5a2b)
	shadow   = color.RGBA{A: 70}

	skyStops = []gradientStop{
		{0, hex(0x87ceeb)},
		{0.25, hex(0xffb347)},
		{0.5, hex(0xff9a8b)},
		{0.75, hex(0xff6b9d)},
		{1, hex(0xc44569)},
	}
)

func inFullscreenButton(x, y int) bool {
	dx := float64(x - fsButtonX)
	dy := float64(y - fsButtonY)
	return dx*dx+dy*dy <= fsButtonR*fsButtonR
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawSky(screen)
	g.drawSun(screen)
	g.drawClouds(screen)
	g.drawBeach(screen)
	g.drawOcean(screen)
	g.drawPalms(screen)
	g.drawWindow(screen)

	g.drawTextShadow(screen, g.view.Tagline(), ScreenWidth/2, windowY+windowH+22, 1.5, white, shadow, 1)

	if g.view.IsPlaying() {
		g.drawSoundBadge(screen)
	}
	g.drawFullscreenButton(screen)
}

func (g *Game) drawSky(screen *ebiten.Image) {
	const band = 4
	for y := 0; y < ScreenHeight; y += band {
		clr := gradientAt(skyStops, float64(y)/float64(ScreenHeight))
		vector.DrawFilledRect(screen, 0, float32(y), ScreenWidth, band, clr, false)
	}
}

func (g *Game) drawSun(screen *ebiten.Image) {
	cx, cy := float32(ScreenWidth/2), float32(ScreenHeight*8/100+60)
	for i := 5; i > 0; i-- {
		glow := withAlpha(gold, uint8(18*i))
		vector.DrawFilledCircle(screen, cx, cy, 60+float32(6-i)*12, glow, true)
	}
	vector.DrawFilledCircle(screen, cx, cy, 60, hex(0xffb347), true)
	vector.DrawFilledCircle(screen, cx, cy, 50, gold, true)
	vector.DrawFilledCircle(screen, cx, cy, 28, hex(0xfff7ae), true)
}

func (g *Game) drawClouds(screen *ebiten.Image) {
	clouds := []struct {
		x, y, size float64
		alpha      uint8
	}{
		{ScreenWidth * 0.12, ScreenHeight * 0.07, 1, 205},
		{ScreenWidth * 0.82, ScreenHeight * 0.14, 0.85, 180},
		{ScreenWidth * 0.72, ScreenHeight * 0.09, 0.65, 155},
	}
	for i, c := range clouds {
		drift := math.Sin(g.time*0.1+float64(i)) * 6
		x, y, s := c.x+drift, c.y, c.size
		clr := withAlpha(white, c.alpha)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(18*s), clr, true)
		vector.DrawFilledCircle(screen, float32(x+20*s), float32(y-8*s), float32(22*s), clr, true)
		vector.DrawFilledCircle(screen, float32(x+42*s), float32(y), float32(17*s), clr, true)
	}
}

func (g *Game) drawBeach(screen *ebiten.Image) {
	for y := sandY; y < oceanY+10; y += 2 {
		t := float64(y-sandY) / float64(oceanY+10-sandY)
		vector.DrawFilledRect(screen, 0, float32(y), ScreenWidth, 2, lerpColor(sand, sandDark, t), false)
	}
}

func (g *Game) drawOcean(screen *ebiten.Image) {
	for y := oceanY; y < ScreenHeight; y += 2 {
		t := float64(y-oceanY) / float64(ScreenHeight-oceanY)
		var clr color.RGBA
		if t < 0.5 {
			clr = lerpColor(teal, darkTeal, t*2)
		} else {
			clr = lerpColor(darkTeal, deepTeal, (t-0.5)*2)
		}
		vector.DrawFilledRect(screen, 0, float32(y), ScreenWidth, 2, clr, false)
	}

	// crest: 100px period scrolling once every 3s, taller while the sound plays
	height := 5 + g.level*12
	phase := g.time / 3 * 2 * math.Pi
	for x := 0; x < ScreenWidth; x += 2 {
		crest := float64(oceanY) - height*(0.5+0.5*math.Sin(float64(x)/100*2*math.Pi-phase))
		vector.DrawFilledRect(screen, float32(x), float32(crest), 2, float32(oceanY+2)-float32(crest), teal, false)
	}
}

func (g *Game) drawPalms(screen *ebiten.Image) {
	g.drawPalm(screen, 40, oceanY-10, 1, -1)
	g.drawPalm(screen, 150, oceanY-6, 0.6, -1)
	g.drawPalm(screen, ScreenWidth-50, oceanY-14, 0.9, 1)
}

func (g *Game) drawPalm(screen *ebiten.Image, baseX, baseY, scale, lean float64) {
	sway := math.Sin(g.time*0.8+baseX) * 3 * scale
	topX := baseX + lean*18*scale + sway
	topY := baseY - 110*scale

	// trunk in three bent segments
	px, py := baseX, baseY
	for i := 1; i <= 3; i++ {
		t := float64(i) / 3
		nx := baseX + (topX-baseX)*t*t
		ny := baseY + (topY-baseY)*t
		vector.StrokeLine(screen, float32(px), float32(py), float32(nx), float32(ny), float32(8*scale), trunk, true)
		px, py = nx, ny
	}

	for i := 0; i < 6; i++ {
		angle := math.Pi + float64(i)*math.Pi/5 + math.Sin(g.time+float64(i))*0.05
		length := 55 * scale
		mx := topX + math.Cos(angle)*length*0.6
		my := topY + math.Sin(angle)*length*0.3 - 6*scale
		ex := topX + math.Cos(angle)*length
		ey := topY + math.Sin(angle)*length*0.5 + 14*scale
		vector.StrokeLine(screen, float32(topX), float32(topY), float32(mx), float32(my), float32(6*scale), palm, true)
		vector.StrokeLine(screen, float32(mx), float32(my), float32(ex), float32(ey), float32(4*scale), palm, true)
	}
}

func (g *Game) drawWindow(screen *ebiten.Image) {
	// drop shadow and border
	vector.DrawFilledRect(screen, windowX+6, windowY+8, windowW, windowH, shadow, false)
	vector.DrawFilledRect(screen, windowX-3, windowY-3, windowW+6, windowH+6, teal, false)

	// title bar
	g.drawVerticalGradient(screen, windowX, windowY, windowW, titleBarH, teal, darkTeal)
	vector.DrawFilledRect(screen, windowX, windowY+titleBarH-2, windowW, 2, deepTeal, false)
	buttons := []struct{ fill, rim color.RGBA }{
		{hex(0xff6b6b), hex(0xcc5555)},
		{hex(0xffd93d), hex(0xccad30)},
		{hex(0x6bcb77), hex(0x55a25f)},
	}
	for i, b := range buttons {
		cx := float32(windowX + 20 + i*22)
		vector.DrawFilledCircle(screen, cx, windowY+titleBarH/2, 8, b.rim, true)
		vector.DrawFilledCircle(screen, cx, windowY+titleBarH/2, 6, b.fill, true)
	}
	g.drawTextShadow(screen, g.page.Title, windowX+windowW/2, windowY+7, 1, white, shadow, 1)

	// content
	contentH := windowH - titleBarH - statusBarH
	g.drawVerticalGradient(screen, windowX, windowY+titleBarH, windowW, float32(contentH), cream, cream2)

	cx := float64(windowX + windowW/2)
	header := "* NOW LOADING VACATION MODE *"
	if g.view.Arrived() {
		header = "* VACATION MODE ACTIVATED *"
	}
	g.drawTextCentered(screen, header, cx, windowY+46, 1, teal)

	const headingScale = 4
	hy := float64(windowY + 68)
	g.drawTextCentered(screen, g.page.Heading, cx+6, hy+6, headingScale, gold)
	g.drawTextCentered(screen, g.page.Heading, cx+3, hy+3, headingScale, teal)
	g.drawTextCentered(screen, g.page.Heading, cx, hy, headingScale, pink)

	g.drawTextCentered(screen, g.view.Departure(), cx, windowY+144, 1.5, darkTeal)
	g.drawTextCentered(screen, g.page.Weather, cx, windowY+174, 1.25, pink)

	g.drawTiles(screen)
	g.drawProgress(screen)

	// dashed divider and footer
	for x := windowX + 30; x < windowX+windowW-30; x += 14 {
		vector.DrawFilledRect(screen, float32(x), windowY+398, 8, 2, teal, false)
	}
	g.drawTextCentered(screen, g.page.Footer, cx, windowY+410, 1.25, pink)

	// status bar
	sy := float32(windowY + windowH - statusBarH)
	g.drawVerticalGradient(screen, windowX, sy, windowW, statusBarH, teal, darkTeal)
	g.drawText(screen, g.page.StatusPath, windowX+12, float64(sy)+4, 1, white)
	g.drawText(screen, g.page.StatusNote, windowX+windowW-12-textWidth(g.page.StatusNote, 1), float64(sy)+4, 1, white)
}

func (g *Game) drawTiles(screen *ebiten.Image) {
	tiles := g.view.Tiles()
	startX := windowX + (windowW-(len(tiles)*tileW+(len(tiles)-1)*tileGap))/2
	for i, tile := range tiles {
		x := float32(startX + i*(tileW+tileGap))
		vector.DrawFilledRect(screen, x+4, tilesY+4, tileW, tileH, teal, false)
		vector.DrawFilledRect(screen, x, tilesY, tileW, tileH, pink, false)
		vector.DrawFilledRect(screen, x+3, tilesY+3, tileW-6, tileH-6, withAlpha(white, 242), false)

		scale := 4.0
		if w := textWidth(tile.Value, scale); w > tileW-16 {
			scale = float64(tileW-16) / float64(len(tile.Value)*glyphWidth)
		}
		vy := float64(tilesY) + (tileH-glyphHeight*scale)/2
		g.drawTextCentered(screen, tile.Value, float64(x)+tileW/2, vy, scale, pink)
		g.drawTextShadow(screen, tile.Label, float64(x)+tileW/2, tilesY+tileH+8, 1.25, darkTeal, withAlpha(white, 160), 1)
	}
}

func (g *Game) drawProgress(screen *ebiten.Image) {
	x := float32(windowX + (windowW-progressW)/2)
	y := float32(progressY)
	vector.DrawFilledRect(screen, x, y, progressW, progressH, teal, false)
	vector.DrawFilledRect(screen, x+3, y+3, progressW-6, progressH-6, hex(0xe8f4f4), false)

	// repeating pink/gold/teal stripes, shifted to shimmer
	stripes := []color.RGBA{pink, gold, teal}
	period := float64(stripeWidth * len(stripes))
	offset := math.Mod(g.time*shimmerSpeed, period)
	innerX, innerW := float64(x)+6, float64(progressW-12)
	for sx := -period + offset; sx < innerW; sx += stripeWidth {
		idx := int(math.Round((sx-offset)/stripeWidth)) % len(stripes)
		if idx < 0 {
			idx += len(stripes)
		}
		left := math.Max(sx, 0)
		right := math.Min(sx+stripeWidth, innerW)
		if right <= left {
			continue
		}
		vector.DrawFilledRect(screen, float32(innerX+left), y+6, float32(right-left), progressH-12, stripes[idx], false)
	}

	g.drawTextCentered(screen, "~ VACATION.SYS LOADING... ~", windowX+windowW/2, float64(y)+progressH+6, 1, teal)
}

func (g *Game) drawSoundBadge(screen *ebiten.Image) {
	pulse := 0.5 + 0.5*math.Sin(g.time*math.Pi)
	bg := withAlpha(teal, uint8(220+25*pulse))
	vector.DrawFilledRect(screen, badgeX-2, badgeY-2, badgeW+4, badgeH+4, white, false)
	vector.DrawFilledRect(screen, badgeX, badgeY, badgeW, badgeH, bg, false)

	g.drawTextCentered(screen, "OCEAN SOUNDS ON", badgeX+badgeW/2, badgeY+6, 1.5, white)
	g.drawTextCentered(screen, "TAP TO STOP", badgeX+badgeW/2, badgeY+30, 1, withAlpha(white, 230))

	// live waveform along the bottom of the badge
	samples := g.meter.Recent(badgeW - 16)
	if len(samples) < 2 {
		return
	}
	mid := float32(badgeY + badgeH - 10)
	for i := 1; i < len(samples); i++ {
		prev := (samples[i-1][0] + samples[i-1][1]) * 0.5
		cur := (samples[i][0] + samples[i][1]) * 0.5
		r, gv, b := hsvToRgb(g.time*40+float64(i)*2, 0.4, 1)
		vector.StrokeLine(screen,
			float32(badgeX+8+i-1), mid-float32(prev*40),
			float32(badgeX+8+i), mid-float32(cur*40),
			1, color.RGBA{R: r, G: gv, B: b, A: 255}, true)
	}
}

func (g *Game) drawFullscreenButton(screen *ebiten.Image) {
	r := float32(fsButtonR)
	if g.fsHovered {
		r *= 1.1
	}
	vector.DrawFilledCircle(screen, fsButtonX+3, fsButtonY+4, r, shadow, true)
	vector.DrawFilledCircle(screen, fsButtonX, fsButtonY, r, white, true)
	vector.DrawFilledCircle(screen, fsButtonX, fsButtonY, r-3, withAlpha(pink, 242), true)

	const s, arm = 10, 6
	cx, cy := float32(fsButtonX), float32(fsButtonY)
	if g.view.IsFullscreen() {
		vector.StrokeLine(screen, cx-s, cy-s, cx+s, cy+s, 3, white, true)
		vector.StrokeLine(screen, cx-s, cy+s, cx+s, cy-s, 3, white, true)
		return
	}
	for _, c := range [][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		px, py := cx+c[0]*s, cy+c[1]*s
		vector.StrokeLine(screen, px, py, px-c[0]*arm, py, 3, white, true)
		vector.StrokeLine(screen, px, py, px, py-c[1]*arm, 3, white, true)
	}
}

func (g *Game) drawVerticalGradient(screen *ebiten.Image, x, y, w, h float32, top, bottom color.RGBA) {
	const band = 2
	for dy := float32(0); dy < h; dy += band {
		bh := float32(band)
		if dy+bh > h {
			bh = h - dy
		}
		vector.DrawFilledRect(screen, x, y+dy, w, bh, lerpColor(top, bottom, float64(dy/h)), false)
	}
}
