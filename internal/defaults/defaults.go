// Package defaults holds the compiled-in fallback content. It is shown
// whenever the database has no rows yet or a read fails, and it seeds the
// singleton tables on first start.
package defaults

import (
	"fmt"

	"minsu-content-backend/internal/model"
)

const roomDescription = `
<p>这是一间充满温馨气息的民宿，采用北欧简约风格设计。整间房间面积约45平方米，拥有独立卫浴、智能家居设备和观景阳台。</p>
<p><strong>房间特色：</strong></p>
<ul>
  <li>落地窗：270°全景视野，清晨可欣赏日出美景</li>
  <li>榻榻米茶室：静谧角落，品茶读书的理想空间</li>
  <li>猫咪友好：欢迎携带宠物入住</li>
  <li>智能家居：语音控制灯光、窗帘、空调</li>
</ul>
<p><strong>设施配置：</strong></p>
<ul>
  <li>舒适大床 (1.8m × 2m)</li>
  <li>独立卫浴（干湿分离）</li>
  <li>迷你厨房（冰箱、微波炉、咖啡机）</li>
  <li>高速 WiFi</li>
  <li>投影仪 + 音响系统</li>
</ul>
`

// RoomID is the id of the single room every fallback record belongs to.
const RoomID int64 = 1

// RoomInfo returns the fallback room record.
func RoomInfo() model.RoomInfo {
	return model.RoomInfo{
		ID:          RoomID,
		RoomName:    "辰奚小院",
		Slogan:      "让心灵在这里找到归属",
		Description: roomDescription,
	}
}

// Images returns the fallback photo gallery, already in display order.
func Images() []model.Image {
	names := []string{
		"民宿外观", "温馨客厅", "舒适卧室", "精致装饰", "阳台景观",
		"独立卫浴", "休闲角落", "窗边风景", "夜间氛围",
	}
	images := make([]model.Image, 0, len(names))
	for i, name := range names {
		images = append(images, model.Image{
			ID:        int64(i + 1),
			RoomID:    RoomID,
			FileURL:   fmt.Sprintf("/images/%d.jpg", i+1),
			FileName:  name,
			SortOrder: int64(i + 1),
			IsCover:   i == 0,
		})
	}
	return images
}

// Videos returns the fallback promotional clips.
func Videos() []model.Video {
	return []model.Video{
		{
			ID:        1,
			RoomID:    RoomID,
			FileURL:   "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			Thumbnail: "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400",
			FileName:  "房间全景漫游",
			FileSize:  245,
			IsPrimary: true,
			SortOrder: 1,
		},
		{
			ID:        2,
			RoomID:    RoomID,
			FileURL:   "https://storage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			Thumbnail: "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400",
			FileName:  "卧室介绍",
			FileSize:  180,
			IsPrimary: false,
			SortOrder: 2,
		},
		{
			ID:        3,
			RoomID:    RoomID,
			FileURL:   "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
			Thumbnail: "https://images.unsplash.com/photo-1560185127-6ed189bf02f4?w=400",
			FileName:  "阳台日落实拍",
			FileSize:  120,
			IsPrimary: false,
			SortOrder: 3,
		},
	}
}

// ContactInfo returns the fallback contact record.
func ContactInfo() model.ContactInfo {
	return model.ContactInfo{
		ID:          1,
		Phone:       "138-8888-8888",
		WechatQRURL: "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=WeChat:minsu_host",
		Email:       "hello@youranminsu.com",
		Address:     "浙江省杭州市西湖区龙井路88号",
		MapLat:      30.2527,
		MapLng:      120.1099,
		SocialMedia: model.SocialLinks{
			{Platform: "小红书", URL: "https://xiaohongshu.com/user/xxx", Icon: "📕"},
			{Platform: "抖音", URL: "https://douyin.com/user/xxx", Icon: "🎵"},
			{Platform: "Instagram", URL: "https://instagram.com/xxx", Icon: "📸"},
		},
	}
}
